package main

// Resolution is one downloadable mp4 variant of a video.
type Resolution struct {
	ID         string  `json:"id"`
	Resolution string  `json:"resolution"`
	Size       float64 `json:"size"` // megabytes, rounded to 2 decimals
}

// VideoMetadata is the shaped video-info payload.
type VideoMetadata struct {
	Title       string       `json:"title"`
	Thumbnail   string       `json:"thumbnail"`
	Duration    string       `json:"duration"`
	Resolutions []Resolution `json:"resolutions"`
}

// ErrorDetail is one field-level validation failure.
type ErrorDetail struct {
	Loc  []string `json:"loc,omitempty"`
	Msg  string   `json:"msg"`
	Type string   `json:"type,omitempty"`
}

// ErrorBody is the error half of the wire envelope.
type ErrorBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message,omitempty"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// Response is the uniform wire envelope for every endpoint. Null-ish fields
// must be absent from the serialized form, not present as null.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// HealthStatus is the /healthz payload.
type HealthStatus struct {
	Status   string `json:"status"`
	Workers  int    `json:"workers"`
	InFlight int    `json:"in_flight"`
	Uptime   string `json:"uptime"`
}

const msgGetVideoInfoSuccess = "Get video information successfully."
