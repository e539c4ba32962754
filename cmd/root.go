package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fogleman/ease"
	"github.com/spf13/cobra"

	"github.com/lumenlabs/glow/backlight"
	"github.com/lumenlabs/glow/config"
	"github.com/lumenlabs/glow/easing"
	"github.com/lumenlabs/glow/logger"
	"github.com/lumenlabs/glow/scale"
)

var rootCmd = &cobra.Command{
	Use:   "glow <action> [operand]",
	Short: "Change and animate backlight brightness",
	Long: "Glow changes the brightness of a sysfs backlight device, animating\n" +
		"the transition with an easing curve.\n\n" +
		"Actions:\n" +
		"  show    print the current brightness\n" +
		"  max     print the device maximum\n" +
		"  set     animate to the operand\n" +
		"  inc     animate to current + operand\n" +
		"  dec     animate to current - operand\n\n" +
		"The operand is either raw device units (2000) or a percentage of the\n" +
		"device maximum (49%).\n\n" +
		"Available easing functions: " + strings.Join(easing.Names(), ", "),
	Args: validateArgs,
	RunE: runRoot,
}

// Execute runs the root command. Cobra has already written the error and
// usage to stderr by the time this sees a failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Float64P("duration", "d", 0.25, "animation duration in seconds")
	rootCmd.Flags().StringP("easing-function", "e", easing.DefaultName, "easing curve used for animations")
	rootCmd.Flags().String("device-dir", backlight.DefaultDir, "backlight device directory")
	rootCmd.Flags().BoolP("percent", "p", false, "print show output as a percentage of the device maximum")
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("expected an action and an optional operand, got %d arguments", len(args))
	}
	switch args[0] {
	case "show", "max", "set", "inc", "dec":
		return nil
	default:
		return fmt.Errorf("invalid action %q, must be one of show, max, set, inc or dec", args[0])
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	action := args[0]

	cfg, err := config.NewGlowConfig()
	if err != nil {
		return err
	}

	deviceDir := cfg.DeviceDir
	if cmd.Flags().Changed("device-dir") {
		deviceDir, _ = cmd.Flags().GetString("device-dir")
	}
	duration := cfg.Duration
	if cmd.Flags().Changed("duration") {
		duration, _ = cmd.Flags().GetFloat64("duration")
	}
	easingName := cfg.Easing
	if cmd.Flags().Changed("easing-function") {
		easingName, _ = cmd.Flags().GetString("easing-function")
	}

	// Everything that can fail on user input alone is checked before the
	// device is opened, so a usage error never touches the hardware.
	var op operand
	if needsOperand(action) {
		if len(args) < 2 {
			return fmt.Errorf("the %s action requires an operand", action)
		}
		op, err = parseOperand(args[1])
		if err != nil {
			return err
		}
	}

	ctl, err := backlight.Open(deviceDir)
	if err != nil {
		return err
	}
	defer ctl.Close()

	switch action {
	case "show":
		v, err := ctl.Brightness()
		if err != nil {
			return err
		}
		if asPercent, _ := cmd.Flags().GetBool("percent"); asPercent {
			fmt.Printf("%.0f%%\n", scale.ToUnitClamp(0, float64(ctl.Max()))(float64(v))*100)
		} else {
			fmt.Println(v)
		}
		return nil
	case "max":
		fmt.Println(ctl.Max())
		return nil
	}

	current, err := ctl.Brightness()
	if err != nil {
		return err
	}

	return ctl.Animate(
		resolveTarget(action, current, op.resolve(ctl.Max())),
		time.Duration(duration*float64(time.Second)),
		resolveEasing(easingName),
	)
}

// operand is a parsed action operand: either raw device units or a
// percentage of the device maximum, which can only be resolved once the
// device is open.
type operand struct {
	value   float64
	percent bool
}

func parseOperand(s string) (operand, error) {
	if raw, ok := strings.CutSuffix(s, "%"); ok {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return operand{}, fmt.Errorf("the operand must be an integer or a percentage, got %q", s)
		}
		return operand{value: p, percent: true}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return operand{}, fmt.Errorf("the operand must be an integer or a percentage, got %q", s)
	}
	return operand{value: float64(n)}, nil
}

func (o operand) resolve(max int) int {
	if o.percent {
		return int(scale.FromUnit(0, float64(max))(o.value / 100))
	}
	return int(o.value)
}

func needsOperand(action string) bool {
	switch action {
	case "set", "inc", "dec":
		return true
	}
	return false
}

func resolveTarget(action string, current, amount int) int {
	switch action {
	case "inc":
		return current + amount
	case "dec":
		return current - amount
	}
	return amount
}

// resolveEasing degrades to the default curve on an unknown name. A typo'd
// curve still gives a perfectly fine animation, so it warns instead of
// failing.
func resolveEasing(name string) ease.Function {
	fn, ok := easing.Lookup(name)
	if !ok {
		log := logger.GetProjectLogger()
		log.Warnf("No easing function %q registered. Defaulting to %s.", name, easing.DefaultName)
		return easing.Default()
	}
	return fn
}
