package overpass

import "fmt"

type center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// element is a node or way returned by the interpreter. Ways only carry a
// center when the query ends with "out center".
type element struct {
	ID     int64             `json:"id"`
	Type   string            `json:"type"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *center           `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type response struct {
	Elements []element `json:"elements"`
}

// Shop is a coffee shop discovered around a query point.
type Shop struct {
	ExternalID int64   `json:"externalId"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Address    *string `json:"address"`
	Distance   float64 `json:"distance"` // metres from the query point
}

type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("overpass: unexpected status code: %d, body: %s", e.StatusCode, e.Body)
}
