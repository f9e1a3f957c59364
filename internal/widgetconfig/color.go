package widgetconfig

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ColorTag validates a CSS color: anything iscolor accepts (hex, rgb(a),
// hsl(a)) plus the named colors and color keywords of CSS Color Level 4.
const ColorTag = "csscolor"

var namedColors = map[string]struct{}{}

func init() {
	for _, name := range strings.Fields(`
		transparent currentcolor
		aliceblue antiquewhite aqua aquamarine azure beige bisque black
		blanchedalmond blue blueviolet brown burlywood cadetblue chartreuse
		chocolate coral cornflowerblue cornsilk crimson cyan darkblue darkcyan
		darkgoldenrod darkgray darkgreen darkgrey darkkhaki darkmagenta
		darkolivegreen darkorange darkorchid darkred darksalmon darkseagreen
		darkslateblue darkslategray darkslategrey darkturquoise darkviolet
		deeppink deepskyblue dimgray dimgrey dodgerblue firebrick floralwhite
		forestgreen fuchsia gainsboro ghostwhite gold goldenrod gray green
		greenyellow grey honeydew hotpink indianred indigo ivory khaki lavender
		lavenderblush lawngreen lemonchiffon lightblue lightcoral lightcyan
		lightgoldenrodyellow lightgray lightgreen lightgrey lightpink
		lightsalmon lightseagreen lightskyblue lightslategray lightslategrey
		lightsteelblue lightyellow lime limegreen linen magenta maroon
		mediumaquamarine mediumblue mediumorchid mediumpurple mediumseagreen
		mediumslateblue mediumspringgreen mediumturquoise mediumvioletred
		midnightblue mintcream mistyrose moccasin navajowhite navy oldlace
		olive olivedrab orange orangered orchid palegoldenrod palegreen
		paleturquoise palevioletred papayawhip peachpuff peru pink plum
		powderblue purple rebeccapurple red rosybrown royalblue saddlebrown
		salmon sandybrown seagreen seashell sienna silver skyblue slateblue
		slategray slategrey snow springgreen steelblue tan teal thistle tomato
		turquoise violet wheat white whitesmoke yellow yellowgreen`) {
		namedColors[name] = struct{}{}
	}
}

// RegisterValidations adds ColorTag to v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(ColorTag, func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		if _, ok := namedColors[strings.ToLower(s)]; ok {
			return true
		}
		return v.Var(s, "iscolor") == nil
	})
}
