package models

import (
	"encoding/json"
	"errors"
)

var ErrMessageRequired = errors.New("message is required")

type ChatPostRequest struct {
	// Message from the student. The field must be present, but may be empty.
	Message string `json:"message"`
}

func (r *ChatPostRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Message == nil {
		return ErrMessageRequired
	}
	r.Message = *raw.Message
	return nil
}

type ChatPostResponse struct {
	Reply string `json:"reply"`
}
