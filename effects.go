package soxfx

import "fmt"

// Equalizer boosts or cuts db around frequency with the given Q
// (DefaultBandQ, -3 dB are the usual starting values).
func (c *Chain) Equalizer(frequency, q, db float64) *Chain {
	return c.add("equalizer", num(frequency), num(q)+"q", num(db))
}

// Bandpass keeps a band around frequency.
func (c *Chain) Bandpass(frequency, q float64) *Chain {
	return c.add("bandpass", num(frequency), num(q)+"q")
}

// Bandreject removes a band around frequency.
func (c *Chain) Bandreject(frequency, q float64) *Chain {
	return c.add("bandreject", num(frequency), num(q)+"q")
}

// Lowshelf applies a bass shelf. sox defaults are -20 dB, 100 Hz, slope 0.5.
func (c *Chain) Lowshelf(gain, frequency, slope float64) *Chain {
	return c.add("bass", nums(gain, frequency, slope)...)
}

// Highshelf applies a treble shelf. sox defaults are -20 dB, 3000 Hz, slope 0.5.
func (c *Chain) Highshelf(gain, frequency, slope float64) *Chain {
	return c.add("treble", nums(gain, frequency, slope)...)
}

// Highpass is a two-pole high-pass filter; DefaultQ gives a Butterworth response.
func (c *Chain) Highpass(frequency, q float64) *Chain {
	return c.add("highpass", num(frequency), num(q)+"q")
}

// Lowpass is a two-pole low-pass filter; DefaultQ gives a Butterworth response.
func (c *Chain) Lowpass(frequency, q float64) *Chain {
	return c.add("lowpass", num(frequency), num(q)+"q")
}

// Limiter applies gain with sox's limiter engaged.
func (c *Chain) Limiter(gain float64) *Chain {
	return c.add("gain", "-l", num(gain))
}

// Normalize scales the audio to 0 dBFS.
func (c *Chain) Normalize() *Chain {
	return c.add("gain", "-n")
}

// NormalizeTo scales the audio so its peak sits at level dBFS.
func (c *Chain) NormalizeTo(level float64) *Chain {
	return c.add("gain", "-n", num(level))
}

// Gain adjusts the level by db decibels.
func (c *Chain) Gain(db float64) *Chain {
	return c.add("gain", num(db))
}

// Compand compresses or expands the dynamic range.
func (c *Chain) Compand(p CompandParams) *Chain {
	return c.add("compand",
		num(p.Attack)+","+num(p.Decay),
		num(p.SoftKnee)+":"+num(p.Threshold)+","+num(p.DBFrom)+","+num(p.DBTo),
	)
}

// Sinc applies a windowed-sinc band filter. Set HighPass for a high-pass,
// LowPass for a low-pass, both for a band-pass.
func (c *Chain) Sinc(p SincParams) *Chain {
	if p.Attenuation != nil && p.Beta != nil {
		return c.fail(invalidParameter("sinc", "attenuation (-a) and beta (-b) are mutually exclusive"))
	}

	phaseOptions := 0
	for _, set := range []bool{p.Phase != nil, p.MinimumPhase, p.IntermediatePhase, p.LinearPhase} {
		if set {
			phaseOptions++
		}
	}
	if phaseOptions > 1 {
		return c.fail(invalidParameter("sinc", "phase (-p), -M, -I and -L are mutually exclusive"))
	}

	if p.LeftTransition != nil && p.LeftTaps != nil {
		return c.fail(invalidParameter("sinc", "left transition band takes -t or -n, not both"))
	}
	if p.RightTransition != nil && p.RightTaps != nil {
		return c.fail(invalidParameter("sinc", "right transition band takes -t or -n, not both"))
	}
	if p.HighPass == nil && p.LowPass == nil {
		return c.fail(invalidParameter("sinc", "a high-pass or low-pass frequency is required"))
	}

	var args []string

	switch {
	case p.Attenuation != nil:
		args = append(args, "-a", num(*p.Attenuation))
	case p.Beta != nil:
		args = append(args, "-b", num(*p.Beta))
	}

	switch {
	case p.Phase != nil:
		args = append(args, "-p", num(*p.Phase))
	case p.MinimumPhase:
		args = append(args, "-M")
	case p.IntermediatePhase:
		args = append(args, "-I")
	case p.LinearPhase:
		args = append(args, "-L")
	}

	args = appendTransition(args, p.LeftTransition, p.LeftTaps)

	switch {
	case p.HighPass != nil && p.LowPass != nil:
		args = append(args, num(*p.HighPass)+"-"+num(*p.LowPass))
	case p.HighPass != nil:
		args = append(args, num(*p.HighPass))
	default:
		args = append(args, "-"+num(*p.LowPass))
	}

	args = appendTransition(args, p.RightTransition, p.RightTaps)

	return c.add("sinc", args...)
}

func appendTransition(args []string, bandwidth, taps *float64) []string {
	if bandwidth != nil {
		args = append(args, "-t", num(*bandwidth))
	}
	if taps != nil {
		args = append(args, "-n", num(*taps))
	}
	return args
}

// Chorus adds one or more modulated, delayed copies of the signal.
func (c *Chain) Chorus(gainIn, gainOut float64, voices ...ChorusVoice) *Chain {
	if len(voices) == 0 {
		return c.fail(invalidParameter("chorus", "at least one voice is required"))
	}

	args := nums(gainIn, gainOut)
	for i, v := range voices {
		mod := v.Modulation
		if mod == "" {
			mod = Sine
		}
		if mod != Sine && mod != Triangle {
			return c.fail(invalidParameter("chorus", "voice %d: unknown modulation %q", i, v.Modulation))
		}
		args = append(args, nums(v.Delay, v.Decay, v.Speed, v.Depth)...)
		args = append(args, "-"+string(mod))
	}

	return c.add("chorus", args...)
}

// Delay adds echoes, one per delay/decay pair. Parallel selects echos.
func (c *Chain) Delay(p DelayParams) *Chain {
	name := "echo"
	if p.Parallel {
		name = "echos"
	}

	if len(p.Delays) == 0 {
		return c.fail(invalidParameter(name, "at least one delay is required"))
	}
	if len(p.Delays) != len(p.Decays) {
		return c.fail(invalidParameter(name, "%d delays but %d decays", len(p.Delays), len(p.Decays)))
	}

	args := nums(p.GainIn, p.GainOut)
	for i := range p.Delays {
		args = append(args, num(p.Delays[i]), num(p.Decays[i]))
	}

	return c.add(name, args...)
}

// Echo is an alias for Delay.
func (c *Chain) Echo(p DelayParams) *Chain {
	return c.Delay(p)
}

// Overdrive adds distortion; sox defaults are gain 20, colour 20.
func (c *Chain) Overdrive(gain, colour float64) *Chain {
	return c.add("overdrive", num(gain), num(colour))
}

// Phaser mixes in a modulated, delayed copy of the signal.
func (c *Chain) Phaser(p PhaserParams) *Chain {
	mod := "-s"
	if p.Triangular {
		mod = "-t"
	}
	return c.add("phaser", append(nums(p.GainIn, p.GainOut, p.Delay, p.Decay, p.Speed), mod)...)
}

// Pitch shifts the pitch by shift cents without changing tempo.
func (c *Chain) Pitch(shift float64, ts TimeStretch) *Chain {
	var args []string
	if ts.Quick {
		args = append(args, "-q")
	}
	args = append(args, nums(shift, ts.Segment, ts.Search, ts.Overlap)...)
	return c.add("pitch", args...)
}

// Loop repeats the audio until the output is interrupted.
func (c *Chain) Loop() *Chain {
	return c.add("repeat", "-")
}

// Reverb adds reverberation with freeverb.
func (c *Chain) Reverb(p ReverbParams) *Chain {
	var args []string
	if p.WetOnly {
		args = append(args, "-w")
	}
	args = append(args, nums(p.Reverberance, p.HFDamping, p.RoomScale, p.StereoDepth, p.PreDelay, p.WetGain)...)
	return c.add("reverb", args...)
}

// Reverse plays the audio backwards.
func (c *Chain) Reverse() *Chain {
	return c.add("reverse")
}

// Speed changes pitch and tempo together. With cents the factor is a pitch
// offset in cents instead of a ratio.
func (c *Chain) Speed(factor float64, cents bool) *Chain {
	v := num(factor)
	if cents {
		v += "c"
	}
	return c.add("speed", v)
}

// Tempo changes tempo by factor without changing pitch.
func (c *Chain) Tempo(factor float64, mode TempoMode, ts TimeStretch) *Chain {
	var args []string
	if ts.Quick {
		args = append(args, "-q")
	}

	switch mode {
	case TempoDefault:
	case TempoMusic, TempoSpeech, TempoLinear:
		args = append(args, "-"+string(mode))
	default:
		return c.fail(invalidParameter("tempo", "unknown mode %q", mode))
	}

	args = append(args, nums(factor, ts.Segment, ts.Search, ts.Overlap)...)
	return c.add("tempo", args...)
}

// Tremolo modulates amplitude at freq Hz; sox uses a depth of 40 by default.
func (c *Chain) Tremolo(freq, depth float64) *Chain {
	return c.add("tremolo", num(freq), num(depth))
}

// Trim keeps the audio between sox positions ("1.5", "=0:30", "-2").
func (c *Chain) Trim(positions ...string) *Chain {
	if len(positions) == 0 {
		return c.fail(invalidParameter("trim", "at least one position is required"))
	}
	return c.add("trim", positions...)
}

// Upsample raises the sample rate by an integer factor, inserting zeros.
func (c *Chain) Upsample(factor int) *Chain {
	if factor < 1 {
		return c.fail(invalidParameter("upsample", "factor %d must be positive", factor))
	}
	return c.add("upsample", fmt.Sprint(factor))
}

// Vol scales the volume. An empty kind means Amplitude; limiterGain is
// optional.
func (c *Chain) Vol(gain float64, kind VolumeType, limiterGain *float64) *Chain {
	switch kind {
	case "":
		kind = Amplitude
	case Amplitude, Power, DB:
	default:
		return c.fail(invalidParameter("vol", "type %q is not one of amplitude, power, dB", kind))
	}

	args := []string{num(gain), string(kind)}
	if limiterGain != nil {
		args = append(args, num(*limiterGain))
	}
	return c.add("vol", args...)
}

// The effects below are not modeled yet; calling them records an error
// wrapping errors.ErrUnsupported. Use Custom to pass them to sox directly.

func (c *Chain) Bend() *Chain           { return c.fail(unsupportedEffect("bend")) }
func (c *Chain) Fade() *Chain           { return c.fail(unsupportedEffect("fade")) }
func (c *Chain) Flanger() *Chain        { return c.fail(unsupportedEffect("flanger")) }
func (c *Chain) Mcompand() *Chain       { return c.fail(unsupportedEffect("mcompand")) }
func (c *Chain) NoiseReduction() *Chain { return c.fail(unsupportedEffect("noisered")) }
func (c *Chain) Oops() *Chain           { return c.fail(unsupportedEffect("oops")) }
func (c *Chain) Synth() *Chain          { return c.fail(unsupportedEffect("synth")) }
func (c *Chain) Vad() *Chain            { return c.fail(unsupportedEffect("vad")) }
