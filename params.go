package soxfx

// Defaults shared by the filter effects.
const (
	DefaultQ          = 0.707
	DefaultBandQ      = 1.0
	DefaultShelfSlope = 0.5
)

// CompandParams configures the compand effect.
type CompandParams struct {
	Attack    float64 // seconds
	Decay     float64 // seconds
	SoftKnee  float64 // dB
	Threshold float64 // dB
	DBFrom    float64
	DBTo      float64
}

// DefaultCompandParams returns a gentle compressor setting.
func DefaultCompandParams() CompandParams {
	return CompandParams{
		Attack:    0.2,
		Decay:     1,
		SoftKnee:  2,
		Threshold: -20,
		DBFrom:    -20,
		DBTo:      -20,
	}
}

// SincParams configures the sinc filter. Nil fields are omitted.
//
// Attenuation and Beta are mutually exclusive, as are Phase and the three
// phase response flags. Each transition band takes either a bandwidth or a
// tap count.
type SincParams struct {
	HighPass *float64 // Hz
	LowPass  *float64 // Hz

	LeftTransition  *float64 // -t before the frequency
	LeftTaps        *float64 // -n before the frequency
	RightTransition *float64 // -t after the frequency
	RightTaps       *float64 // -n after the frequency

	Attenuation *float64 // -a
	Beta        *float64 // -b

	Phase             *float64 // -p
	MinimumPhase      bool     // -M
	IntermediatePhase bool     // -I
	LinearPhase       bool     // -L
}

// Modulation selects the LFO shape of chorus and phaser.
type Modulation string

const (
	Sine     Modulation = "s"
	Triangle Modulation = "t"
)

// ChorusVoice is one delayed copy added by the chorus effect.
type ChorusVoice struct {
	Delay      float64 // ms
	Decay      float64
	Speed      float64 // Hz
	Depth      float64 // ms
	Modulation Modulation
}

// DelayParams configures echo and echos.
type DelayParams struct {
	GainIn   float64
	GainOut  float64
	Delays   []float64 // ms
	Decays   []float64
	Parallel bool // echos instead of echo
}

// DefaultDelayParams returns two taps at 1000 and 1800 ms.
func DefaultDelayParams() DelayParams {
	return DelayParams{
		GainIn:  0.8,
		GainOut: 0.5,
		Delays:  []float64{1000, 1800},
		Decays:  []float64{0.3, 0.25},
	}
}

// PhaserParams configures the phaser effect.
type PhaserParams struct {
	GainIn     float64
	GainOut    float64
	Delay      float64 // ms
	Decay      float64
	Speed      float64 // Hz
	Triangular bool
}

// DefaultPhaserParams returns a gentle sine-modulated phaser.
func DefaultPhaserParams() PhaserParams {
	return PhaserParams{
		GainIn:  0.9,
		GainOut: 0.8,
		Delay:   1,
		Decay:   0.25,
		Speed:   2,
	}
}

// ReverbParams configures the reverb effect. Percentages are 0-100.
type ReverbParams struct {
	Reverberance float64
	HFDamping    float64
	RoomScale    float64
	StereoDepth  float64
	PreDelay     float64 // ms
	WetGain      float64 // dB
	WetOnly      bool
}

// DefaultReverbParams returns a medium room with a 20 ms pre-delay.
func DefaultReverbParams() ReverbParams {
	return ReverbParams{
		Reverberance: 50,
		HFDamping:    50,
		RoomScale:    100,
		StereoDepth:  100,
		PreDelay:     20,
		WetGain:      0,
	}
}

// TimeStretch holds the WSOLA settings shared by pitch and tempo.
type TimeStretch struct {
	Quick   bool    // -q
	Segment float64 // ms
	Search  float64 // ms
	Overlap float64 // ms
}

// DefaultTimeStretch returns the default WSOLA window sizes.
func DefaultTimeStretch() TimeStretch {
	return TimeStretch{
		Segment: 82,
		Search:  14.68,
		Overlap: 12,
	}
}

// TempoMode tunes the tempo algorithm for a kind of material.
type TempoMode string

const (
	TempoDefault TempoMode = ""
	TempoMusic   TempoMode = "m"
	TempoSpeech  TempoMode = "s"
	TempoLinear  TempoMode = "l"
)

// VolumeType says how the vol effect interprets its gain.
type VolumeType string

const (
	Amplitude VolumeType = "amplitude"
	Power     VolumeType = "power"
	DB        VolumeType = "dB"
)
