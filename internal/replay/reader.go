package replay

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/okian/courtside/internal/domain/model"
)

const maxLineBytes = 4 << 20

// ReadFrames parses one frame per line:
//
//	{"index":1,"orientation":"portrait","preset":"video",
//	 "display":{"width":375,"height":812},
//	 "detections":[{"label":"rim","confidence":0.9,"box":{"x":0.4,"y":0.85,"w":0.2,"h":0.05}}]}
//
// A detection may carry "bbox":[x,y,w,h] instead of "box". Omitted frame
// fields fall back to d; an omitted index is the 1-based line number.
// Blank lines and lines starting with '#' are ignored.
func ReadFrames(r io.Reader, d FrameDefaults) ([]model.Frame, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var frames []model.Frame
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		f, err := parseFrame(raw, int64(line), d)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		frames = append(frames, f)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read frames: %w", err)
	}
	return frames, nil
}

func parseFrame(raw string, line int64, d FrameDefaults) (model.Frame, error) {
	if !gjson.Valid(raw) {
		return model.Frame{}, ErrMalformedLine
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return model.Frame{}, fmt.Errorf("%w: not an object", ErrMalformedLine)
	}

	f := model.Frame{
		Index:       line,
		Orientation: d.Orientation,
		Preset:      d.Preset,
		Display:     d.Display,
	}
	if v := doc.Get("index"); v.Exists() {
		f.Index = v.Int()
	}
	if v := doc.Get("orientation"); v.Exists() {
		f.Orientation = model.ParseOrientation(v.String())
	}
	if v := doc.Get("preset"); v.Exists() {
		p, err := model.ParsePreset(v.String())
		if err != nil {
			return model.Frame{}, fmt.Errorf("%w: %w", ErrMalformedLine, err)
		}
		f.Preset = p
	}
	if v := doc.Get("display.width"); v.Exists() {
		f.Display.Width = v.Float()
	}
	if v := doc.Get("display.height"); v.Exists() {
		f.Display.Height = v.Float()
	}

	doc.Get("detections").ForEach(func(_, item gjson.Result) bool {
		f.Detections = append(f.Detections, parseDetection(item))
		return true
	})
	return f, nil
}

// parseDetection never fails: malformed geometry is left for the pipeline
// to skip.
func parseDetection(item gjson.Result) model.Detection {
	d := model.Detection{
		Label:      item.Get("label").String(),
		Confidence: item.Get("confidence").Float(),
	}
	if box := item.Get("box"); box.Exists() {
		d.Box = model.Box{
			X: box.Get("x").Float(),
			Y: box.Get("y").Float(),
			W: box.Get("w").Float(),
			H: box.Get("h").Float(),
		}
		return d
	}
	vals := make([]float64, 0, 4)
	item.Get("bbox").ForEach(func(_, v gjson.Result) bool {
		vals = append(vals, v.Float())
		return len(vals) < 4
	})
	if len(vals) == 4 {
		d.Box = model.Box{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}
	} else {
		d.Box = model.Box{W: -1, H: -1}
	}
	return d
}
