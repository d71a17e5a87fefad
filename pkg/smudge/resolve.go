package smudge

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Invocation is a fully resolved command line.
type Invocation struct {
	Params    Params
	InputPath string
	OutputDir string
	Progress  bool

	// Warnings lists flag values that failed to parse and were replaced by
	// their defaults.
	Warnings []ParseWarning
	// RangeSwapped is set when --smudge-min and --smudge-max had to be
	// reordered on at least one channel.
	RangeSwapped bool
}

type flagKind int

const (
	flagWeight flagKind = iota
	flagShade
	flagMin
	flagMax
	flagSeed
	flagProgress
)

var flagNames = map[string]flagKind{
	"--smudge-weight": flagWeight,
	"-w":              flagWeight,
	"--smudge-shade":  flagShade,
	"-s":              flagShade,
	"--smudge-min":    flagMin,
	"-m":              flagMin,
	"--smudge-max":    flagMax,
	"-M":              flagMax,
	"--seed":          flagSeed,
	"-S":              flagSeed,
	"--progress":      flagProgress,
	"-p":              flagProgress,
}

// Resolve turns raw arguments (without the program name) into an
// Invocation. The first two tokens are the input file and the output
// directory; the rest are flag/value pairs. Malformed values fall back to
// the matching field of defaults and are reported in Invocation.Warnings.
// Argument errors are returned before path errors. A token in a flag slot is
// checked against the known flags before its value, so an unknown trailing
// token is unrecognized rather than missing a value.
func Resolve(args []string, defaults Params, defaultProgress bool) (*Invocation, error) {
	inv := &Invocation{Params: defaults, Progress: defaultProgress}
	if len(args) > 0 {
		inv.InputPath = args[0]
	}
	if len(args) > 1 {
		inv.OutputDir = args[1]
	}

	defMin, defMax := uint32(0), MaxPacked
	var minPacked, maxPacked *uint32
	if defaults.Range != nil {
		defMin, defMax = PackColor(defaults.Range.Min), PackColor(defaults.Range.Max)
		minPacked, maxPacked = &defMin, &defMax
	}

	for i := 2; i < len(args); i += 2 {
		name := args[i]
		kind, ok := flagNames[name]
		if !ok {
			return nil, newError(KindArgument, ErrUnrecognizedArgument, "invalid argument %q specified", name)
		}
		if i+1 >= len(args) {
			return nil, newError(KindArgument, ErrMissingValue, "argument %q must correspond with a value", name)
		}
		value := args[i+1]

		switch kind {
		case flagWeight:
			w, err := strconv.ParseUint(value, 10, 8)
			if err != nil {
				inv.warn(name, value, strconv.Itoa(int(defaults.Weight)))
				inv.Params.Weight = defaults.Weight
				continue
			}
			inv.Params.Weight = uint8(w)
		case flagShade:
			s, err := strconv.ParseBool(value)
			if err != nil {
				inv.warn(name, value, strconv.FormatBool(defaults.Shade))
				inv.Params.Shade = defaults.Shade
				continue
			}
			inv.Params.Shade = s
		case flagMin, flagMax:
			target, fallback := &minPacked, defMin
			if kind == flagMax {
				target, fallback = &maxPacked, defMax
			}
			packed, err := parsePacked(value)
			if err != nil {
				inv.warn(name, value, formatPacked(fallback))
				packed = fallback
			}
			*target = &packed
		case flagSeed:
			seed, err := strconv.ParseUint(value, 0, 64)
			if err != nil {
				inv.warn(name, value, formatSeed(defaults.Seed))
				inv.Params.Seed = defaults.Seed
				continue
			}
			inv.Params.Seed = &seed
		case flagProgress:
			pr, err := strconv.ParseBool(value)
			if err != nil {
				inv.warn(name, value, strconv.FormatBool(defaultProgress))
				inv.Progress = defaultProgress
				continue
			}
			inv.Progress = pr
		}
	}

	if minPacked != nil || maxPacked != nil {
		lo, hi := defMin, defMax
		if minPacked != nil {
			lo = *minPacked
		}
		if maxPacked != nil {
			hi = *maxPacked
		}
		inv.Params.Range = NewChannelRange(lo, hi)
		inv.RangeSwapped = inv.Params.Range.Normalize()
	}

	if err := ValidateInputPath(inv.InputPath); err != nil {
		return nil, err
	}
	if err := ValidateOutputPath(inv.OutputDir); err != nil {
		return nil, err
	}
	return inv, nil
}

func (inv *Invocation) warn(flag, value, def string) {
	inv.Warnings = append(inv.Warnings, ParseWarning{Flag: flag, Value: value, Default: def})
}

// parsePacked accepts decimal, 0x-prefixed hex or #RRGGBB.
func parsePacked(s string) (uint32, error) {
	base := 0
	if strings.HasPrefix(s, "#") {
		s, base = s[1:], 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, err
	}
	if uint32(v) > MaxPacked {
		return 0, strconv.ErrRange
	}
	return uint32(v), nil
}

func formatPacked(v uint32) string {
	return fmt.Sprintf("0x%06X", v)
}

func formatSeed(seed *uint64) string {
	if seed == nil {
		return "random"
	}
	return strconv.FormatUint(*seed, 10)
}

// ValidateInputPath checks that path names an existing non-directory.
func ValidateInputPath(path string) error {
	if path == "" {
		return newError(KindInputPath, ErrNoInputPath, "")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newError(KindInputPath, ErrInputNotFound, "%s", path)
		}
		return newError(KindInputPath, err, "%s", path)
	}
	if info.IsDir() {
		return newError(KindInputPath, ErrInputIsDir, "%s", path)
	}
	return nil
}

// ValidateOutputPath checks that path names an existing directory.
func ValidateOutputPath(path string) error {
	if path == "" {
		return newError(KindOutputPath, ErrNoOutputPath, "")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newError(KindOutputPath, ErrOutputNotFound, "%s", path)
		}
		return newError(KindOutputPath, err, "%s", path)
	}
	if !info.IsDir() {
		return newError(KindOutputPath, ErrOutputNotDir, "%s", path)
	}
	return nil
}
