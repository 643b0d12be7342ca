package main

import (
	"fmt"

	"github.com/dmitrymomot/dds/core/dds"
)

// SensorData is the sample published on SensorTopic.
type SensorData struct {
	SensorID    int     `json:"sensor_id"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Location    string  `json:"location"`
}

// Clone returns a copy; SensorData holds no reference fields.
func (d *SensorData) Clone() dds.Sample {
	c := *d
	return &c
}

func (d *SensorData) String() string {
	return fmt.Sprintf("SensorData[id=%d, temp=%.2f, humidity=%.2f, location=%s]",
		d.SensorID, d.Temperature, d.Humidity, d.Location)
}

// reading returns the i-th synthetic reading.
func reading(i int) *SensorData {
	return &SensorData{
		SensorID:    i,
		Temperature: 20.0 + float64(i),
		Humidity:    50.0 + float64(i*2),
		Location:    fmt.Sprintf("Room %d", i),
	}
}
