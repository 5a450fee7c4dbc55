package facade

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/passbi/transitcat/internal/render"
)

// ColorInput decodes a render_settings color, which may arrive as
// either a plain string, an [r,g,b] array, or an [r,g,b,a] array.
type ColorInput struct {
	Color render.Color
}

func (c *ColorInput) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.Color = render.NamedColor(name)
		return nil
	}

	var nums []float64
	if err := json.Unmarshal(data, &nums); err != nil {
		return fmt.Errorf("%w: color must be a string or [r,g,b((,a))] array", ErrParse)
	}

	switch len(nums) {
	case 3:
		c.Color = render.RGB(int(nums[0]), int(nums[1]), int(nums[2]))
	case 4:
		c.Color = render.RGBA(int(nums[0]), int(nums[1]), int(nums[2]), nums[3])
	default:
		return fmt.Errorf("%w: color array must have 3 or 4 elements", ErrParse)
	}
	return nil
}
