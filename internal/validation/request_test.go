package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	type body struct {
		Content  string  `validate:"required,max=10"`
		Category string  `validate:"postcategory"`
		Website  *string `validate:"omitempty,url"`
	}

	bad := "not a url"
	good := "https://example.com"

	tests := []struct {
		name    string
		input   body
		wantErr string
	}{
		{"valid", body{Content: "hello", Category: "general", Website: &good}, ""},
		{"empty category allowed", body{Content: "hello"}, ""},
		{"missing content", body{Category: "general"}, "field content failed validation on rule required"},
		{"content too long", body{Content: "this is far too long"}, "field content failed validation on rule max"},
		{"unknown category", body{Content: "hi", Category: "memes"}, "field category failed validation on rule postcategory"},
		{"bad website", body{Content: "hi", Website: &bad}, "field website failed validation on rule url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateStruct_Visibility(t *testing.T) {
	type body struct {
		Visibility string `validate:"visibility"`
	}
	assert.NoError(t, ValidateStruct(body{Visibility: "followers_only"}))
	assert.Error(t, ValidateStruct(body{Visibility: "everyone"}))
}
