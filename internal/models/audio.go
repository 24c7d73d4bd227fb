package models

import "time"

// AudioFeatures are the high level acoustic attributes of a track.
type AudioFeatures struct {
	ID               string
	URI              string
	TrackHref        string
	AnalysisURL      string
	Acousticness     float64
	Danceability     float64
	Energy           float64
	Instrumentalness float64
	Liveness         float64
	Loudness         float64
	Speechiness      float64
	Tempo            float64
	Valence          float64
	Duration         time.Duration
	Key              Key
	Mode             Mode
	TimeSignature    int
}

// AudioAnalysis is the low level analysis of a track. Times inside it are seconds.
type AudioAnalysis struct {
	Meta     AnalysisMeta
	Track    AnalysisTrack
	Bars     []TimeInterval
	Beats    []TimeInterval
	Tatums   []TimeInterval
	Sections []Section
	Segments []Segment
}

// AnalysisMeta describes the analyzer run.
type AnalysisMeta struct {
	AnalyzerVersion string
	Platform        string
	DetailedStatus  string
	StatusCode      int
	Timestamp       int64
	AnalysisTime    float64
	InputProcess    string
}

// AnalysisTrack holds track wide analysis values.
type AnalysisTrack struct {
	NumSamples              int
	Duration                float64
	SampleMD5               string
	OffsetSeconds           int
	WindowSeconds           int
	AnalysisSampleRate      int
	AnalysisChannels        int
	EndOfFadeIn             float64
	StartOfFadeOut          float64
	Loudness                float64
	Tempo                   float64
	TempoConfidence         float64
	TimeSignature           int
	TimeSignatureConfidence float64
	Key                     Key
	KeyConfidence           float64
	Mode                    Mode
	ModeConfidence          float64
}

// TimeInterval is a bar, beat or tatum.
type TimeInterval struct {
	Start      float64
	Duration   float64
	Confidence float64
}

// Section is a large variation in rhythm or timbre.
type Section struct {
	TimeInterval
	Loudness                float64
	Tempo                   float64
	TempoConfidence         float64
	Key                     Key
	KeyConfidence           float64
	Mode                    Mode
	ModeConfidence          float64
	TimeSignature           int
	TimeSignatureConfidence float64
}

// Segment is a short, roughly consistent sound.
type Segment struct {
	TimeInterval
	LoudnessStart   float64
	LoudnessMax     float64
	LoudnessMaxTime float64
	LoudnessEnd     float64
	Pitches         []float64
	Timbre          []float64
}
