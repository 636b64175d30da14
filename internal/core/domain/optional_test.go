package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_AbsentNullValue(t *testing.T) {
	var doc struct {
		A Optional[string] `json:"a"`
		B Optional[string] `json:"b"`
		C Optional[string] `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"b":null,"c":""}`), &doc))

	assert.False(t, doc.A.Set)
	assert.True(t, doc.B.Set)
	assert.True(t, doc.B.Null)
	assert.False(t, doc.B.HasValue())
	assert.True(t, doc.C.HasValue())
	assert.Equal(t, "", doc.C.Value)
}

func TestOptional_TypeMismatch(t *testing.T) {
	var doc struct {
		N Optional[float64] `json:"n"`
	}

	assert.Error(t, json.Unmarshal([]byte(`{"n":"three"}`), &doc))
}

func TestOptional_Constructors(t *testing.T) {
	assert.Equal(t, Optional[int]{Value: 4, Set: true}, Some(4))
	assert.Equal(t, Optional[int]{Set: true, Null: true}, Null[int]())
}
