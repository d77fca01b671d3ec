package models

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type ExtractResponse struct {
	Filename   string `json:"filename"`
	Kind       string `json:"kind"`
	Text       string `json:"text"`
	Characters int    `json:"characters"`
}

type HealthResponse struct {
	Status   string    `json:"status"`
	Provider string    `json:"provider"`
	Time     time.Time `json:"time"`
}
