package api

import "time"

type RequestLog struct {
	Method    string
	URL       string
	Headers   map[string][]string
	Status    int
	Duration  time.Duration
	RequestID string
}

type RequestLogger func(RequestLog)
