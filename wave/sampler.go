package wave

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/gyng/synthrs"
)

// Sampler plays a recorded waveform back as an instrument. sample is the
// recording as float64 samples in [-1, 1], sampleFrequency the pitch of the
// recorded note in Hz and sampleRate the rate it was recorded at. Requested
// frequencies pitch-shift the recording by resampling it with linear
// interpolation; past the end of the recording the note is silent.
func Sampler(sample []float64, sampleFrequency float64, sampleRate int) synthrs.Instrument {
	return func(frequency float64) synthrs.Signal {
		ratio := frequency / sampleFrequency
		return func(t float64) float64 {
			pos := t * float64(sampleRate) * ratio
			if pos < 0 {
				return 0.0
			}
			index := int(math.Floor(pos))
			if index >= len(sample)-1 {
				return 0.0
			}
			frac := pos - float64(index)
			return sample[index]*(1.0-frac) + sample[index+1]*frac
		}
	}
}

// LoadSample decodes a .wav file into mono float64 samples in [-1, 1] and
// the rate the file was recorded at, both suitable for Sampler.
// Multi-channel files are mixed down by averaging the channels.
func LoadSample(r io.ReadSeeker) ([]float64, int, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("could not decode sample: not a valid wav file")
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("could not decode sample: %v", err)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(decoder.BitDepth)
	}
	scale := float64(int(1) << (bitDepth - 1))
	return mixdown(buf, scale), buf.Format.SampleRate, nil
}

// mixdown averages an interleaved buffer down to mono and scales the integer
// samples to [-1, 1].
func mixdown(buf *audio.IntBuffer, scale float64) []float64 {
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	samples := make([]float64, len(buf.Data)/channels)
	for i := range samples {
		acc := 0.0
		for c := 0; c < channels; c++ {
			acc += float64(buf.Data[i*channels+c])
		}
		samples[i] = acc / float64(channels) / scale
	}
	return samples
}

// LoadSampleFile reads and decodes a .wav file from disk; see LoadSample.
func LoadSampleFile(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("could not open sample file %v: %v", path, err)
	}
	defer f.Close()
	samples, rate, err := LoadSample(f)
	if err != nil {
		return nil, 0, fmt.Errorf("could not load sample file %v: %v", path, err)
	}
	return samples, rate, nil
}
