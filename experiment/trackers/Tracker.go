// Package trackers implements Trackers, which track and save data in an
// experiment
package trackers

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/rlbasics/timestep"
)

// Tracker keeps track of experiment data and saves the data after the
// experiment has finished. Trackers created without a filename keep
// their data in memory only, and saving them does nothing.
type Tracker interface {
	Track(t ts.TimeStep)
	Save() error
}

// ActionTracker is a Tracker which also needs to know the action that
// led to each TimeStep. Experiments call TrackAction instead of Track
// on ActionTrackers.
type ActionTracker interface {
	Tracker
	TrackAction(action int, t ts.TimeStep)
}

func save(filename string, data interface{}) error {
	if filename == "" {
		return nil
	}
	return SaveData(filename, data)
}

// SaveData gob-encodes data to filename
func SaveData(filename string, data interface{}) error {
	if filename == "" {
		return fmt.Errorf("saveData: no file to save to")
	}

	// Open the file to save to
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saveData: could not open save file: %w", err)
	}
	defer file.Close()

	// Encode and save the file
	en := gob.NewEncoder(file)
	if err = en.Encode(data); err != nil {
		return fmt.Errorf("saveData: could not encode data: %w", err)
	}
	return file.Close()
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) ([]float64, error) {
	var data []float64
	if err := LoadInto(filename, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// LoadInto decodes gob data saved at filename into data, which must be
// a pointer
func LoadInto(filename string, data interface{}) error {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("loadData: could not open data file: %w", err)
	}
	defer file.Close()

	// Decode the data
	dec := gob.NewDecoder(file)
	if err = dec.Decode(data); err != nil {
		return fmt.Errorf("loadData: could not decode data: %w", err)
	}
	return nil
}
