package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/ikemen-engine/presenter/packages/upscale"
)

// Config is the content of the configuration file.
type Config struct {
	Video  upscale.Config
	Width  int
	Height int
	Title  string
}

func defaultConfig() Config {
	return Config{
		Video:  upscale.Config{UpscalingFilter: upscale.FilterSharpBilinear},
		Width:  1280,
		Height: 720,
		Title:  "presenter",
	}
}

// LoadConfig reads filename. A missing file yields the defaults.
func LoadConfig(filename string) (Config, error) {
	content, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := ParseConfig(string(bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))))
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", filename, err)
	}
	return cfg, nil
}

// ParseConfig reads the [Video] and [Window] sections of an INI file.
// Unknown sections and keys are ignored.
func ParseConfig(text string) (Config, error) {
	cfg := defaultConfig()
	lines := SplitAndTrim(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	for i := 0; i < len(lines); {
		name, _ := SectionName(lines[i])
		i++
		if name == "" {
			continue
		}

		is := NewIniSection()
		is.Parse(lines, &i)

		var err error
		switch name {
		case "video":
			err = cfg.parseVideo(is)
		case "window":
			err = cfg.parseWindow(is)
		}
		if err != nil {
			return Config{}, fmt.Errorf("[%s]: %w", name, err)
		}
	}

	return cfg, nil
}

func (c *Config) parseVideo(is IniSection) error {
	if err := is.ReadBool("perelementupscaling", &c.Video.PerElementUpscalingEnabled); err != nil {
		return err
	}
	if err := is.ReadBool("widescreenmode", &c.Video.WidescreenModeOn); err != nil {
		return err
	}

	if value, ok := is["upscalingfilter"]; ok {
		filter, err := upscale.ParseFilter(value)
		if err != nil {
			return err
		}
		c.Video.UpscalingFilter = filter
	}

	return nil
}

func (c *Config) parseWindow(is IniSection) error {
	if err := is.ReadInt("width", &c.Width); err != nil {
		return err
	}
	if err := is.ReadInt("height", &c.Height); err != nil {
		return err
	}
	if title, ok := is["title"]; ok {
		c.Title = title
	}

	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	return nil
}

// Split string on separator, and remove all
// leading and trailing white space from each line
func SplitAndTrim(str, sep string) (ss []string) {
	ss = strings.Split(str, sep)
	for i, s := range ss {
		ss[i] = strings.TrimSpace(s)
	}
	return
}

// SectionName returns the lower case name of a "[Name rest]" header line
// and the rest of the header. Lines that are no header yield "".
func SectionName(sec string) (string, string) {
	if len(sec) == 0 || sec[0] != '[' {
		return "", ""
	}
	sec = strings.TrimSpace(strings.SplitN(sec, ";", 2)[0])
	if sec[len(sec)-1] != ']' {
		return "", ""
	}
	sec = sec[1:strings.Index(sec, "]")]
	var name string
	i := strings.Index(sec, " ")
	if i >= 0 {
		name = sec[:i]
		sec = sec[i+1:]
	} else {
		name = sec
		sec = ""
	}
	return strings.ToLower(name), sec
}

// IniSection maps lower case keys to values. The first occurrence of a key
// wins.
type IniSection map[string]string

func NewIniSection() IniSection {
	return IniSection(make(map[string]string))
}

// Parse reads key = value lines starting at *i up to the next section
// header. Text after ';' is a comment.
func (is IniSection) Parse(lines []string, i *int) {
	for ; *i < len(lines); (*i)++ {
		if len(lines[*i]) > 0 && lines[*i][0] == '[' {
			break
		}
		line := strings.TrimSpace(strings.SplitN(lines[*i], ";", 2)[0])
		ia := strings.IndexAny(line, "= \t")
		if ia > 0 {
			name := strings.ToLower(line[:ia])
			var data string
			ia = strings.Index(line, "=")
			if ia >= 0 {
				data = strings.TrimSpace(line[ia+1:])
			}
			_, ok := is[name]
			if !ok {
				is[name] = data
			}
		}
	}
}

// ReadBool parses key into out if present. Absent keys leave out as is.
func (is IniSection) ReadBool(key string, out *bool) error {
	value, ok := is[key]
	if !ok {
		return nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*out = b
	return nil
}

// ReadInt parses key into out if present.
func (is IniSection) ReadInt(key string, out *int) error {
	value, ok := is[key]
	if !ok {
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*out = n
	return nil
}
