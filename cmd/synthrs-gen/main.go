package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/gyng/synthrs"
	"github.com/gyng/synthrs/cmd"
	"github.com/gyng/synthrs/filter"
	"github.com/gyng/synthrs/synth"
	"github.com/gyng/synthrs/version"
)

func main() {
	waveName := flag.String("wave", "sine", "Waveform to generate. Possible values: sine, square, sawtooth, triangle, tangent, noise, bell, karplus.")
	frequency := flag.Float64("freq", 440, "Frequency of the generated tone, in Hz.")
	length := flag.Float64("length", 1, "Length of the generated tone, in seconds.")
	sampleRate := flag.Int("rate", 44100, "Sample rate of the output, in Hz.")
	attack := flag.Float64("attack", 0.01, "Attack of the bell and karplus waveforms, in seconds.")
	decay := flag.Float64("decay", 1, "Decay of the bell and karplus waveforms, in seconds.")
	lowpass := flag.Float64("lowpass", 0, "Lowpass filter the output with this cutoff, in Hz.")
	highpass := flag.Float64("highpass", 0, "Highpass filter the output with this cutoff, in Hz.")
	band := flag.Float64("band", 0.01, "Transition band of the -lowpass and -highpass filters, as a fraction of the sample rate.")
	pcm := flag.Bool("c", false, "Convert audio to 16-bit signed PCM when outputting.")
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	out := flag.String("o", "", "Output filename. Defaults to the waveform name with a .wav extension.")
	help := flag.Bool("h", false, "Show help.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	cfg := synthrs.DefaultRenderConfig()
	cfg.SampleRate = *sampleRate
	cfg.Instrument = *waveName
	cfg.Attack = *attack
	cfg.Decay = *decay
	gen, err := cmd.InstrumentByName(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	samples := synth.Samples(*length, *sampleRate, gen(*frequency))
	if *lowpass > 0 {
		kernel := filter.Lowpass(filter.CutoffFromFrequency(*lowpass, *sampleRate), *band)
		samples = filter.Convolve(kernel, samples)
	}
	if *highpass > 0 {
		kernel := filter.Highpass(filter.CutoffFromFrequency(*highpass, *sampleRate), *band)
		samples = filter.Convolve(kernel, samples)
	}
	contents, err := synthrs.Wav(samples, *sampleRate, *pcm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not generate .wav file: %v\n", err)
		os.Exit(1)
	}
	if *stdout {
		if _, err := os.Stdout.Write(contents); err != nil {
			fmt.Fprintf(os.Stderr, "could not write to standard output: %v\n", err)
			os.Exit(1)
		}
		return
	}
	name := *out
	if name == "" {
		name = *waveName + ".wav"
	}
	if err := ioutil.WriteFile(name, contents, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "could not write file %v: %v\n", name, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Synthrs tone generator. Writes test tones as .wav files, optionally filtered.\nUsage: %s [flags]\n", os.Args[0])
	flag.PrintDefaults()
}
