package models

import (
	"fmt"

	"github.com/desertthunder/spotx/internal/shared"
)

// CopyrightType is resolved from the single character code the API reports.
type CopyrightType int

const (
	// CopyrightPerformance is the "C" copyright.
	CopyrightPerformance CopyrightType = iota + 1
	// CopyrightSoundRecording is the "P" (phonogram) copyright.
	CopyrightSoundRecording
)

// ParseCopyrightType maps "C" and "P" to their variants. Any other code is an error wrapping [shared.ErrUnrecognizedValue].
func ParseCopyrightType(code string) (CopyrightType, error) {
	switch code {
	case "C":
		return CopyrightPerformance, nil
	case "P":
		return CopyrightSoundRecording, nil
	default:
		return 0, fmt.Errorf("%w: copyright type %q", shared.ErrUnrecognizedValue, code)
	}
}

// Code returns the wire code for the type.
func (c CopyrightType) Code() string {
	switch c {
	case CopyrightPerformance:
		return "C"
	case CopyrightSoundRecording:
		return "P"
	default:
		return ""
	}
}

func (c CopyrightType) String() string {
	switch c {
	case CopyrightPerformance:
		return "performance"
	case CopyrightSoundRecording:
		return "sound recording"
	default:
		return "unknown"
	}
}

// Copyright statement attached to an album or show.
type Copyright struct {
	Text string
	Type CopyrightType
}
