// Package soxfx builds SoX (Sound eXchange) effect chains and runs them over
// files, in-memory sample buffers, WAV handles or the default audio device.
//
// The package does no signal processing itself. Effect methods append sox
// arguments to a Chain; applying the chain spawns sox once, synchronously,
// pipes samples in and out as raw bytes, and decodes the result.
//
// # Basic Usage
//
// Build a chain once and reuse it:
//
//	fx := soxfx.New().
//	    Highshelf(-20, 3000, soxfx.DefaultShelfSlope).
//	    Reverb(soxfx.DefaultReverbParams()).
//	    Phaser(soxfx.DefaultPhaserParams())
//	if err := fx.Err(); err != nil {
//	    // a parameter combination sox would reject
//	}
//
// File to file:
//
//	_, err := fx.Apply(soxfx.PathSource{Path: "in.wav"}, soxfx.PathDestination{Path: "out.ogg"})
//
// Buffer to buffer:
//
//	in, _ := soxfx.FromChannels(soxfx.Float32, left, right)
//	out, err := fx.Apply(soxfx.BufferSource{Buffer: in}, soxfx.BufferDestination{},
//	    soxfx.SampleRateIn(48000))
//
// # Sources and Destinations
//
//   - PathSource / PathDestination: sox opens the file; input channel count and
//     sample rate are probed with sox --i
//   - BufferSource / BufferDestination: raw s16, f32 or f64 samples over pipes
//   - HandleSource / HandleDestination: 16-bit PCM WAV streams such as *os.File
//   - DeviceSource / DeviceDestination: the default audio device (-d)
//
// # Errors
//
// Invalid effect parameters are reported by Chain.Err and returned by Apply
// before sox is started (ErrInvalidParameter, errors.ErrUnsupported). Any
// output sox writes to stderr fails the invocation with a *ProcessError,
// including warnings; pass AllowClipping(true) (the default) to keep clipping
// warnings quiet.
//
// # Requirements
//
// SoX must be installed and accessible in PATH:
//   - macOS: brew install sox
//   - Ubuntu/Debian: apt-get install sox
//   - RHEL/CentOS: yum install sox
//
// Verify installation:
//
//	err := soxfx.CheckSoxInstalled("")
package soxfx
