package synthrs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Wav serializes a mono float64 sample buffer into an in-memory .wav file.
// If pcm16 is true the payload is 16-bit signed PCM, otherwise 32-bit IEEE
// float. The buffer is expected to be peak normalized; values outside [-1, 1]
// are clamped by the PCM conversion and will clip.
func Wav(buffer []float64, sampleRate int, pcm16 bool) ([]byte, error) {
	buf := new(bytes.Buffer)
	wavHeader(len(buffer), sampleRate, pcm16, buf)
	err := rawToBuffer(buffer, pcm16, buf)
	if err != nil {
		return nil, fmt.Errorf("Wav failed: %v", err)
	}
	return buf.Bytes(), nil
}

// Raw serializes a mono float64 sample buffer into headerless little-endian
// PCM, 16-bit signed when pcm16 is true and 32-bit float otherwise.
func Raw(buffer []float64, pcm16 bool) ([]byte, error) {
	buf := new(bytes.Buffer)
	err := rawToBuffer(buffer, pcm16, buf)
	if err != nil {
		return nil, fmt.Errorf("Raw failed: %v", err)
	}
	return buf.Bytes(), nil
}

func rawToBuffer(data []float64, pcm16 bool, buf *bytes.Buffer) error {
	var err error
	if pcm16 {
		err = binary.Write(buf, binary.LittleEndian, QuantizeSamples16(data))
	} else {
		float32data := make([]float32, len(data))
		for i, v := range data {
			float32data[i] = float32(v)
		}
		err = binary.Write(buf, binary.LittleEndian, float32data)
	}
	if err != nil {
		return fmt.Errorf("could not binary write data to binary buffer: %v", err)
	}
	return nil
}

// wavHeader writes a wave header for either a 16-bit PCM or a 32-bit float
// mono .wav file into the bytes.Buffer. It needs to know the number of
// samples in the buffer and the sample rate. pcm16 = true writes the plain
// PCM header; pcm16 = false writes the IEEE float header, which additionally
// carries an extension size and a fact chunk.
func wavHeader(bufferLength, sampleRate int, pcm16 bool, buf *bytes.Buffer) {
	// Refer to: http://www-mmsp.ece.mcgill.ca/Documents/AudioFormats/WAVE/WAVE.html
	numChannels := 1
	var bytesPerSample, chunkSize, fmtChunkSize, waveFormat int
	var factChunk bool
	if pcm16 {
		bytesPerSample = 2
		chunkSize = 36 + bytesPerSample*bufferLength
		fmtChunkSize = 16
		waveFormat = 1 // PCM
		factChunk = false
	} else {
		bytesPerSample = 4
		chunkSize = 50 + bytesPerSample*bufferLength
		fmtChunkSize = 18
		waveFormat = 3 // IEEE float
		factChunk = true
	}
	buf.Write([]byte("RIFF"))
	binary.Write(buf, binary.LittleEndian, uint32(chunkSize))
	buf.Write([]byte("WAVE"))
	buf.Write([]byte("fmt "))
	binary.Write(buf, binary.LittleEndian, uint32(fmtChunkSize))
	binary.Write(buf, binary.LittleEndian, uint16(waveFormat))
	binary.Write(buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*numChannels*bytesPerSample)) // avgBytesPerSec
	binary.Write(buf, binary.LittleEndian, uint16(numChannels*bytesPerSample))            // blockAlign
	binary.Write(buf, binary.LittleEndian, uint16(8*bytesPerSample))                      // bits per sample
	if fmtChunkSize > 16 {
		binary.Write(buf, binary.LittleEndian, uint16(0)) // size of extension
	}
	if factChunk {
		buf.Write([]byte("fact"))
		binary.Write(buf, binary.LittleEndian, uint32(4))            // fact chunk size
		binary.Write(buf, binary.LittleEndian, uint32(bufferLength)) // sample length
	}
	buf.Write([]byte("data"))
	binary.Write(buf, binary.LittleEndian, uint32(bytesPerSample*bufferLength))
}

// halfLevels16 is half the number of 16-bit quantization levels (2^16-1)/2,
// so that the full [-1, 1] range maps onto the full int16 range.
const halfLevels16 = (1<<16 - 1) / 2.0

// Quantize16 converts a sample in [-1, 1] to a signed 16-bit value; values
// outside the range are clamped.
func Quantize16(sample float64) int16 {
	return int16(clamp(int(sample*halfLevels16), math.MinInt16, math.MaxInt16))
}

// QuantizeSamples16 converts a float64 buffer to 16-bit signed PCM samples.
func QuantizeSamples16(samples []float64) []int16 {
	quantized := make([]int16, len(samples))
	for i, sample := range samples {
		quantized[i] = Quantize16(sample)
	}
	return quantized
}

// Unquantize16 converts a signed 16-bit sample back to a float64 in
// approximately [-1, 1].
func Unquantize16(sample int16) float64 {
	return float64(sample) / halfLevels16
}

// UnquantizeSamples16 converts 16-bit signed PCM samples to a float64 buffer.
func UnquantizeSamples16(samples []int16) []float64 {
	unquantized := make([]float64, len(samples))
	for i, sample := range samples {
		unquantized[i] = Unquantize16(sample)
	}
	return unquantized
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
