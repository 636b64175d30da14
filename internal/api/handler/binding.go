package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// bindBody decodes the JSON body. Decode failures surface as a 400 with a
// stable message instead of the decoder's text.
func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && (he.Code == http.StatusRequestEntityTooLarge || he.Code == http.StatusUnsupportedMediaType) {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}
