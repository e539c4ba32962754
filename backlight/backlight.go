// Package backlight owns the sysfs backlight device: it caches the device
// maximum, keeps a persistent read-write handle to the brightness attribute,
// and drives timed brightness animations through it.
package backlight

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fogleman/ease"
	"github.com/spf13/afero"
	"k8s.io/utils/clock"

	"github.com/lumenlabs/glow/tween"
)

// DefaultDir is the device directory used when the caller configures nothing
// else. It is only a default at the call site; Open takes the directory
// explicitly.
const DefaultDir = "/sys/class/backlight/intel_backlight"

const (
	maxBrightnessFile = "max_brightness"
	brightnessFile    = "brightness"

	// Pause between animation writes, so the loop doesn't busy-spin on the
	// clock or saturate the sysfs write channel.
	writeBackoff = time.Millisecond
)

// DeviceReadError reports a device attribute that is missing or does not
// contain a decimal integer.
type DeviceReadError struct {
	Path string
	Err  error
}

func (e *DeviceReadError) Error() string {
	return fmt.Sprintf("backlight: cannot read device value from %s: %v", e.Path, e.Err)
}

func (e *DeviceReadError) Unwrap() error {
	return e.Err
}

// RangeError reports a brightness value above the device maximum.
//
// Note the asymmetry: only the upper bound is checked. Negative values are
// not rejected, matching the long-standing behavior of this tool.
type RangeError struct {
	Value float64
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("backlight: brightness must be in range 0 to %d for this device, got %v", e.Max, e.Value)
}

// Control is an open handle to one backlight device. The zero value is not
// usable; get one from Open and release it with Close. A Control is not safe
// for concurrent use.
type Control struct {
	dir   string
	fs    afero.Fs
	clock clock.Clock

	max  int
	file afero.File
}

// Option configures a Control before it touches the device.
type Option func(*Control)

// WithFs swaps the filesystem the device is read through. Tests use this
// with an in-memory fs.
func WithFs(fs afero.Fs) Option {
	return func(c *Control) { c.fs = fs }
}

// WithClock swaps the clock driving animation timing and throttling.
func WithClock(cl clock.Clock) Option {
	return func(c *Control) { c.clock = cl }
}

// Open acquires the backlight device under dir. It reads and caches the
// device maximum once, then opens a persistent read-write handle to the
// brightness attribute. The caller must Close the returned Control on every
// exit path.
func Open(dir string, opts ...Option) (*Control, error) {
	c := &Control{
		dir:   dir,
		fs:    afero.NewOsFs(),
		clock: clock.RealClock{},
	}
	for _, opt := range opts {
		opt(c)
	}

	// The maximum is immutable for the life of the device, so one read is
	// enough.
	maxPath := filepath.Join(dir, maxBrightnessFile)
	data, err := afero.ReadFile(c.fs, maxPath)
	if err != nil {
		return nil, &DeviceReadError{Path: maxPath, Err: err}
	}
	max, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, &DeviceReadError{Path: maxPath, Err: err}
	}
	c.max = max

	brightnessPath := filepath.Join(dir, brightnessFile)
	file, err := c.fs.OpenFile(brightnessPath, os.O_RDWR, 0o644)
	if err != nil {
		return nil, &DeviceReadError{Path: brightnessPath, Err: err}
	}
	c.file = file

	return c, nil
}

// Close releases the brightness handle.
func (c *Control) Close() error {
	return c.file.Close()
}

// Max returns the device maximum cached at Open.
func (c *Control) Max() int {
	return c.max
}

// Brightness re-reads the current value from the device. No caching: the
// value can be changed out from under us by other tools or the kernel, and a
// stale snapshot would be a lie.
func (c *Control) Brightness() (int, error) {
	if _, err := c.file.Seek(0, io.SeekStart); err != nil {
		return 0, &DeviceReadError{Path: c.file.Name(), Err: err}
	}
	data, err := io.ReadAll(c.file)
	if err != nil {
		return 0, &DeviceReadError{Path: c.file.Name(), Err: err}
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, &DeviceReadError{Path: c.file.Name(), Err: err}
	}
	return v, nil
}

// SetBrightness writes v to the device. Values above the device maximum fail
// with *RangeError.
func (c *Control) SetBrightness(v int) error {
	return c.set(float64(v))
}

// set range-checks the raw eased value before integer truncation, so a curve
// that overshoots max by a fraction still fails the same way a whole-number
// overshoot does.
func (c *Control) set(v float64) error {
	if v > float64(c.max) {
		return &RangeError{Value: v, Max: c.max}
	}

	if _, err := c.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err := c.file.WriteString(strconv.Itoa(int(v)))
	return err
}

// Animate eases the brightness from its current value to target over
// duration, writing each intermediate value produced by a tween.TimedRange
// and sleeping ~1ms between writes. The call blocks for roughly duration.
//
// After the timed sequence drains, one exact write of target is issued, so a
// finished animation always lands on precisely the requested value no matter
// how coarse the timing was.
//
// Overshooting curves are not clamped: if the curve swings above the device
// maximum mid-flight, the animation aborts with *RangeError and the last
// successfully written value stays in place.
func (c *Control) Animate(target int, duration time.Duration, fn ease.Function) error {
	current, err := c.Brightness()
	if err != nil {
		return err
	}

	tr := tween.NewTimedRange(c.clock, float64(current), float64(target), duration, fn)
	for {
		v, ok := tr.Next()
		if !ok {
			break
		}
		if err := c.set(v); err != nil {
			return err
		}
		c.clock.Sleep(writeBackoff)
	}

	return c.SetBrightness(target)
}
