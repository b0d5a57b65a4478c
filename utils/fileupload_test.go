package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		expectedCode string
	}{
		{"valid png", "design.png", 1024, ""},
		{"valid png uppercase extension", "DESIGN.PNG", 1024, ""},
		{"png at the size limit", "design.png", MaxFileSize, ""},
		{"oversized file", "design.png", MaxFileSize + 1, "FILE_TOO_LARGE"},
		{"jpeg rejected", "design.jpg", 1024, "INVALID_FILE_FORMAT"},
		{"no extension", "design", 1024, "INVALID_FILE_FORMAT"},
		{"pdf rejected", "design.pdf", 1024, "INVALID_FILE_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{
				Filename: tt.filename,
				Size:     tt.size,
			}

			err := ValidateImageFile(header)
			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
			uploadErr, ok := err.(*FileUploadError)
			assert.True(t, ok)
			assert.Equal(t, tt.expectedCode, uploadErr.Code)
		})
	}
}
