package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gyng/synthrs"
	"github.com/gyng/synthrs/cmd"
	"github.com/gyng/synthrs/midi"
	"github.com/gyng/synthrs/synth"
	"github.com/gyng/synthrs/version"
	"github.com/gyng/synthrs/wave"
)

func main() {
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, everything is placed in the same directory where the original song file is.")
	rawOut := flag.Bool("r", false, "Output the rendered song as .raw file, a headerless mono float32 buffer.")
	wavOut := flag.Bool("w", false, "Output the rendered song as .wav file (default behaviour when no other output is defined).")
	pcm := flag.Bool("c", false, "Convert audio to 16-bit signed PCM when outputting.")
	envelope := flag.Bool("e", false, "Apply an attack/decay envelope to each note.")
	instrument := flag.String("i", "sine", "Instrument to render with. Possible values: sine, square, sawtooth, triangle, tangent, noise, bell, karplus.")
	sampleRate := flag.Int("rate", 44100, "Sample rate of the output, in Hz.")
	samplePath := flag.String("sample", "", "Render with a .wav file as the instrument instead of -i, pitch-shifting it per note.")
	sampleFreq := flag.Float64("samplefreq", 440, "Pitch of the -sample recording, in Hz.")
	configPath := flag.String("config", "", "Read rendering options from this .yml or .json file. Explicit flags override it.")
	verbose := flag.Bool("verbose", false, "Print the parsed song structure to standard error.")
	versionFlag := flag.Bool("v", false, "Print version.")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*rawOut && !*wavOut {
		*wavOut = true // if the user gives nothing to output, then the default behaviour is to write a .wav
	}
	var profileFile *os.File
	if *cpuprofile != "" {
		var err error
		profileFile, err = os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(profileFile); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
	}
	cfg := synthrs.DefaultRenderConfig()
	if *configPath != "" {
		configBytes, err := ioutil.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not read config file %v: %v\n", *configPath, err)
			os.Exit(1)
		}
		if errJSON := json.Unmarshal(configBytes, &cfg); errJSON != nil {
			if errYaml := yaml.Unmarshal(configBytes, &cfg); errYaml != nil {
				fmt.Fprintf(os.Stderr, "the config could not be parsed as .json (%v) or .yml (%v)\n", errJSON, errYaml)
				os.Exit(1)
			}
		}
	}
	if isFlagPassed("rate") {
		cfg.SampleRate = *sampleRate
	}
	if isFlagPassed("i") {
		cfg.Instrument = *instrument
	}
	cfg.Envelope = cfg.Envelope || *envelope
	cfg.PCM16 = cfg.PCM16 || *pcm
	var gen synthrs.Instrument
	if *samplePath != "" {
		sample, sampleRate, err := wave.LoadSampleFile(*samplePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not load sample %v: %v\n", *samplePath, err)
			os.Exit(1)
		}
		gen = wave.Sampler(sample, *sampleFreq, sampleRate)
	} else {
		var err error
		gen, err = cmd.InstrumentByName(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	process := func(filename string) error {
		output := func(extension string, contents []byte) error {
			if *stdout {
				_, err := os.Stdout.Write(contents)
				return err
			}
			_, name := filepath.Split(filename)
			var dir string
			if *directory != "" {
				dir = *directory
			}
			if dir == "" {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
				}
			}
			name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
			f := filepath.Join(dir, name)
			if dir != "" {
				if err := os.MkdirAll(dir, os.ModePerm); err != nil {
					return fmt.Errorf("could not create output directory %v: %v", dir, err)
				}
			}
			err := ioutil.WriteFile(f, contents, 0644)
			if err != nil {
				return fmt.Errorf("could not write file %v: %v", f, err)
			}
			return nil
		}
		song, err := midi.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("could not parse %v: %v", filename, err)
		}
		if *verbose {
			duration, _ := song.Duration()
			fmt.Fprintf(os.Stderr, "%v: format %v, %v track(s), %v ticks/quarter, %v BPM, %.3fs\n",
				filename, song.Format, song.TrackCount, song.TimeUnit, song.BPM, duration)
			if tempo, ok := song.Tempo(); ok {
				fmt.Fprintf(os.Stderr, "  tempo event: %v\n", tempo)
			}
			for i, track := range song.Tracks {
				fmt.Fprintf(os.Stderr, "  track %v: %v event(s), last tick %v\n", i, len(track.Events), track.MaxTime)
				for _, event := range track.Events {
					fmt.Fprintf(os.Stderr, "    %v\n", event)
				}
			}
		}
		buffer, err := synth.FromSong(gen, song, cfg)
		if err != nil {
			return fmt.Errorf("rendering failed: %v", err)
		}
		if *rawOut {
			raw, err := synthrs.Raw(buffer, cfg.PCM16)
			if err != nil {
				return fmt.Errorf("could not generate .raw file: %v", err)
			}
			if err := output(".raw", raw); err != nil {
				return fmt.Errorf("error outputting .raw file: %v", err)
			}
		}
		if *wavOut {
			wavBytes, err := synthrs.Wav(buffer, cfg.SampleRate, cfg.PCM16)
			if err != nil {
				return fmt.Errorf("could not generate .wav file: %v", err)
			}
			if err := output(".wav", wavBytes); err != nil {
				return fmt.Errorf("error outputting .wav file: %v", err)
			}
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			midfiles, err := filepath.Glob(filepath.Join(param, "*.mid"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for mid files: %v\n", param, err)
				retval = 1
				continue
			}
			midifiles, err := filepath.Glob(filepath.Join(param, "*.midi"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for midi files: %v\n", param, err)
				retval = 1
				continue
			}
			files := append(midfiles, midifiles...)
			for _, file := range files {
				err := process(file)
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
					retval = 1
				}
			}
		} else {
			err := process(param)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
				retval = 1
			}
		}
	}
	if *cpuprofile != "" {
		pprof.StopCPUProfile()
		profileFile.Close()
	}
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		runtime.GC()    // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
	os.Exit(retval)
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Synthrs command line utility for rendering .mid song files to audio.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
