package models

import "time"

type Location struct {
	ID        int     `json:"location_id"`
	City      string  `json:"city"`
	Postal    string  `json:"postal"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type StateVolume struct {
	State  string `json:"state"`
	Volume int64  `json:"search_volume"`
}

type YearVolume struct {
	Year   int   `json:"year"`
	Volume int64 `json:"search_volume"`
}

type CityVolume struct {
	City   string  `json:"city"`
	Postal string  `json:"postal"`
	State  string  `json:"state"`
	Lat    float64 `json:"latitude"`
	Lon    float64 `json:"longitude"`
	Volume int64   `json:"search_volume"`
}

type StateYearVolume struct {
	State  string  `json:"state"`
	Lat    float64 `json:"latitude"`
	Lon    float64 `json:"longitude"`
	Year   int     `json:"year"`
	Volume int64   `json:"search_volume"`
}

type LeadingCause struct {
	Year   int    `json:"year"`
	State  string `json:"state"`
	Cause  string `json:"cause"`
	Deaths int64  `json:"deaths"`
}

type ChatTurn struct {
	ID        int
	SessionID string
	Question  string
	Response  string
	Category  string
	CreatedAt time.Time
}

type ContactSubmission struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	Status    string
	CreatedAt time.Time
}
