package soxfx

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// SoxTestSuite runs chains against the real sox binary
type SoxTestSuite struct {
	suite.Suite
	tmpDir string
}

// SetupSuite runs once before all tests
func (s *SoxTestSuite) SetupSuite() {
	if err := CheckSoxInstalled(""); err != nil {
		s.T().Skipf("SoX not installed, skipping tests: %v", err)
	}
}

// SetupTest runs before each test
func (s *SoxTestSuite) SetupTest() {
	s.tmpDir = s.T().TempDir()
}

func TestSoxTestSuite(t *testing.T) {
	suite.Run(t, new(SoxTestSuite))
}

func (s *SoxTestSuite) chain() *Chain {
	return testChain(s.T(), ExecRunner{})
}

func (s *SoxTestSuite) TestUnityGainRoundTrip() {
	in := sineBuffer(s.T(), Float32, 44100, 440, 0.5, 44100)

	out, err := s.chain().Gain(0).Apply(BufferSource{Buffer: in}, nil)
	s.Require().NoError(err)

	s.Equal(1, out.Channels)
	s.Equal(Float32, out.Encoding)
	s.Equal(in.Frames(), out.Frames())
	s.InDelta(in.RMS(), out.RMS(), 1e-3)
}

func (s *SoxTestSuite) TestGainThenReverb() {
	in := sineBuffer(s.T(), Float32, 44100, 440, 0.5, 2*44100)

	out, err := s.chain().Gain(-3).Reverb(DefaultReverbParams()).Apply(BufferSource{Buffer: in}, nil)
	s.Require().NoError(err)

	s.Equal(1, out.Channels)
	s.Equal(in.Frames(), out.Frames())

	attenuated := in.Peak() * math.Pow(10, -3.0/20)
	s.LessOrEqual(out.Peak(), 2*attenuated, "reverb tail stays within 6 dB of the attenuated input")
	s.Greater(out.RMS(), 0.0)
}

func (s *SoxTestSuite) TestStereoChannelsPreserved() {
	left := sineBuffer(s.T(), Float32, 44100, 440, 0.5, 4410)
	in, err := FromChannels(Float32, left.Data, make([]float64, len(left.Data)))
	s.Require().NoError(err)

	out, err := s.chain().Gain(0).Apply(BufferSource{Buffer: in}, nil)
	s.Require().NoError(err)

	s.Equal(2, out.Channels)
	s.Equal(in.Frames(), out.Frames())
	s.InDelta(0.5, (&Buffer{Data: out.Channel(0)}).Peak(), 1e-3)
	s.InDelta(0, (&Buffer{Data: out.Channel(1)}).Peak(), 1e-6)
}

func (s *SoxTestSuite) TestResampleAndRemix() {
	in := sineBuffer(s.T(), Float32, 44100, 440, 0.5, 44100)

	out, err := s.chain().Apply(BufferSource{Buffer: in}, nil,
		SampleRateOut(22050), ChannelsOut(2), EncodingOut(Int16))
	s.Require().NoError(err)

	s.Equal(Int16, out.Encoding)
	s.Equal(2, out.Channels)
	s.InDelta(22050, out.Frames(), 16)
}

func (s *SoxTestSuite) TestFileToFile() {
	inPath := filepath.Join(s.tmpDir, "in.wav")
	outPath := filepath.Join(s.tmpDir, "out.wav")
	tone := sineBuffer(s.T(), Float32, 16000, 440, 0.5, 16000)

	_, err := s.chain().Apply(BufferSource{Buffer: tone}, PathDestination{Path: inPath}, SampleRateIn(16000))
	s.Require().NoError(err)

	info, err := Probe(context.Background(), ExecRunner{}, "sox", inPath)
	s.Require().NoError(err)
	s.Equal(Info{Channels: 1, SampleRate: 16000}, info)

	_, err = s.chain().Highpass(100, DefaultQ).Apply(PathSource{Path: inPath}, PathDestination{Path: outPath})
	s.Require().NoError(err)

	stat, err := os.Stat(outPath)
	s.Require().NoError(err)
	s.Greater(stat.Size(), int64(44))

	out, err := s.chain().Apply(PathSource{Path: outPath}, nil)
	s.Require().NoError(err)
	s.Equal(1, out.Channels)
	s.InDelta(16000, out.Frames(), 16)
	s.Greater(out.RMS(), 0.01, "output is not silent")
}

func (s *SoxTestSuite) TestHandleRoundTrip() {
	in, err := FromChannels(Int16, []float64{0, 1000, -1000, 2000}, []float64{500, -500, 250, -250})
	s.Require().NoError(err)

	path := filepath.Join(s.tmpDir, "handle.wav")
	f, err := os.Create(path)
	s.Require().NoError(err)
	defer f.Close()

	// no effects: sox would dither 16-bit output after a gain stage
	_, err = s.chain().Apply(BufferSource{Buffer: in}, HandleDestination{Writer: f}, SampleRateIn(8000))
	s.Require().NoError(err)

	r, err := os.Open(path)
	s.Require().NoError(err)
	defer r.Close()

	out, err := s.chain().Apply(HandleSource{Reader: r}, nil)
	s.Require().NoError(err)
	s.Equal(in, out)
}

func (s *SoxTestSuite) TestMissingFile() {
	_, err := s.chain().Gain(0).Apply(PathSource{Path: filepath.Join(s.tmpDir, "missing.wav")}, nil)
	s.ErrorIs(err, ErrProcessFailure)
}

func (s *SoxTestSuite) TestClippingWarningFails() {
	in := sineBuffer(s.T(), Int16, 8000, 440, 30000, 8000)

	_, err := s.chain().Gain(12).Apply(BufferSource{Buffer: in}, nil, SampleRateIn(8000), AllowClipping(false))

	var perr *ProcessError
	s.Require().ErrorAs(err, &perr)
	s.Contains(perr.Stderr, "clipped")

	_, err = s.chain().Gain(12).Apply(BufferSource{Buffer: in}, nil, SampleRateIn(8000))
	s.NoError(err, "clipping is silent when allowed")
}

func (s *SoxTestSuite) TestContextCancellation() {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	in := sineBuffer(s.T(), Int16, 8000, 440, 1000, 800)

	// repeat - never ends on its own
	start := time.Now()
	_, err := s.chain().Loop().ApplyWithContext(ctx, BufferSource{Buffer: in}, nil, SampleRateIn(8000))

	s.Less(time.Since(start), 5*time.Second)
	s.ErrorIs(err, ErrProcessFailure)
	s.ErrorIs(err, context.DeadlineExceeded)
}
