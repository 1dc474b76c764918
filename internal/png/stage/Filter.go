package stage

// Filter is the resampling filter applied when resizing.
type Filter int

const (
	Nearest Filter = iota
	Triangle
	CatmullRom
	Gaussian
	Lanczos3
)

var filterNames = map[string]Filter{
	"nearest":  Nearest,
	"triangle": Triangle,
	"catmull":  CatmullRom,
	"gaussian": Gaussian,
	"lanczos3": Lanczos3,
}

// ParseFilter maps a host filter name to a Filter. Unknown names fall back
// to nearest-neighbour rather than failing.
func ParseFilter(name string) Filter {
	if f, ok := filterNames[name]; ok {
		return f
	}
	return Nearest
}

func (f Filter) String() string {
	for name, v := range filterNames {
		if v == f {
			return name
		}
	}
	return "nearest"
}
