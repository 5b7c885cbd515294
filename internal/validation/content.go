package validation

import (
	"fmt"
	"strings"

	"socialconnect/internal/models"
)

// ValidatePostContent checks post content length and non-emptiness.
func ValidatePostContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("post content cannot be empty")
	}
	if len([]rune(trimmed)) > models.MaxPostLength {
		return fmt.Errorf("post content must not exceed %d characters", models.MaxPostLength)
	}
	return nil
}

// ValidateCommentContent checks comment content length and non-emptiness.
func ValidateCommentContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("comment content cannot be empty")
	}
	if len([]rune(trimmed)) > models.MaxCommentLength {
		return fmt.Errorf("comment content must not exceed %d characters", models.MaxCommentLength)
	}
	return nil
}

// ValidateBio checks profile bio length.
func ValidateBio(bio string) error {
	if len([]rune(bio)) > models.MaxBioLength {
		return fmt.Errorf("bio must not exceed %d characters", models.MaxBioLength)
	}
	return nil
}
