package main

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"dscheirer.com/segtimer/display"
	"dscheirer.com/segtimer/rgb"
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// displayController is what the API drives
type displayController interface {
	Off() error
	ShowCurrentTime(p *display.Paint) error
	StartCountdown(h, m, s int, p *display.Paint) error
	CancelCountdown() error
	SetColor(c rgb.Color) error
	SetColors(cs []rgb.Color) error
	StartAnimation(spec AnimationSpec) error
	StopAnimation() error
	StopBlink() error
	Status() (status, error)
}

type colorView struct {
	Red   uint8 `json:"red"`
	Green uint8 `json:"green"`
	Blue  uint8 `json:"blue"`
}

type remainingView struct {
	Hours   int    `json:"hours"`
	Minutes int    `json:"minutes"`
	Seconds int    `json:"seconds"`
	Ends    string `json:"ends"`
}

type statusView struct {
	Mode      string         `json:"mode"`
	Colors    []colorView    `json:"colors"`
	Remaining *remainingView `json:"remaining,omitempty"`
}

type apiResponse struct {
	Response string      `json:"response"`
	Error    string      `json:"error,omitempty"`
	Status   *statusView `json:"status,omitempty"`
}

// APIHandler - the HTTP side of the controller
type APIHandler struct {
	ctl    displayController
	user   string
	secret string
	realm  string
	logger flogger
}

// NewHandler - create a new API handler
func NewHandler(rt runtimeConfig, ctl displayController) *APIHandler {
	return &APIHandler{
		ctl:    ctl,
		user:   rt.settings.GetString(sAPIUser),
		secret: rt.settings.GetString(sAPISecret),
		realm:  "segtimer",
		logger: &ThreadLogger{name: "API"},
	}
}

// BasicAuth - provide a middleware to authenticate users, if a secret is set
func (m *APIHandler) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.secret == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(m.user)) != 1 || subtle.ConstantTimeCompare([]byte(pass), []byte(m.secret)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+m.realm+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorised.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func colorsView(p display.Paint) []colorView {
	cs := p.Colors()
	ret := make([]colorView, len(cs))
	for i, c := range cs {
		ret[i] = colorView{Red: c.R, Green: c.G, Blue: c.B}
	}
	return ret
}

func toStatusView(st status) *statusView {
	sv := &statusView{Mode: st.Mode.String(), Colors: colorsView(st.Paint)}
	if st.Mode == ModeCountdown {
		sv.Remaining = &remainingView{
			Hours:   st.Remaining.hours,
			Minutes: st.Remaining.minutes,
			Seconds: st.Remaining.seconds,
			Ends:    st.Ends.Format(time.RFC3339),
		}
	}
	return sv
}

func errorCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case isValidation(err):
		return http.StatusBadRequest
	case errors.Cause(err) == ErrClosed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeAnswer(w http.ResponseWriter, code int, cr apiResponse) {
	output, _ := json.Marshal(cr)
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(code)
	w.Write(output)
}

// answer reports err, with the status after the operation
func (m *APIHandler) answer(w http.ResponseWriter, r *http.Request, err error) {
	cr := apiResponse{Response: "OK"}
	if err != nil {
		m.logger.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		cr.Response = "BAD"
		cr.Error = err.Error()
	}
	if st, serr := m.ctl.Status(); serr == nil {
		cr.Status = toStatusView(st)
	}
	writeAnswer(w, errorCode(err), cr)
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	data, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return nil, invalid("body", "%v", err)
	}
	return data, nil
}

// colorFromJSON reads {"red":..,"green":..,"blue":..}
func colorFromJSON(field string, data []byte) (rgb.Color, error) {
	var ch [3]int
	for i, k := range []string{"red", "green", "blue"} {
		v, err := jsonparser.GetInt(data, k)
		if err != nil {
			return rgb.Black, invalid(field+"."+k, "missing or not an integer")
		}
		ch[i] = int(v)
	}
	c, err := rgb.FromInts(ch[0], ch[1], ch[2])
	if err != nil {
		return rgb.Black, colorError(field, err)
	}
	return c, nil
}

// lookup finds key in data, (nil, NotExist) if it is not there
func lookup(data []byte, key string) ([]byte, jsonparser.ValueType, error) {
	if len(data) == 0 {
		return nil, jsonparser.NotExist, nil
	}
	v, dt, _, err := jsonparser.Get(data, key)
	if err == jsonparser.KeyPathNotFoundError {
		return nil, jsonparser.NotExist, nil
	}
	if err != nil {
		return nil, dt, invalid(key, "%v", err)
	}
	return v, dt, nil
}

func parseColor(data []byte, key string) (*rgb.Color, error) {
	v, dt, err := lookup(data, key)
	if err != nil || dt == jsonparser.NotExist || dt == jsonparser.Null {
		return nil, err
	}
	if dt != jsonparser.Object {
		return nil, invalid(key, "want an object")
	}
	c, err := colorFromJSON(key, v)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func parseColors(data []byte, key string) ([]rgb.Color, error) {
	v, dt, err := lookup(data, key)
	if err != nil || dt == jsonparser.NotExist || dt == jsonparser.Null {
		return nil, err
	}
	if dt != jsonparser.Array {
		return nil, invalid(key, "want an array")
	}

	ret := []rgb.Color{}
	var cerr error
	i := 0
	_, err = jsonparser.ArrayEach(v, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		field := fmt.Sprintf("%s[%d]", key, i)
		i++
		if cerr != nil {
			return
		}
		if dataType != jsonparser.Object {
			cerr = invalid(field, "want an object")
			return
		}
		c, e := colorFromJSON(field, value)
		if e != nil {
			cerr = e
			return
		}
		ret = append(ret, c)
	})
	if cerr != nil {
		return nil, cerr
	}
	if err != nil {
		return nil, invalid(key, "%v", err)
	}
	return ret, nil
}

// parsePaint reads an optional "color" or "colors"; nil means keep the
// current paint
func parsePaint(data []byte) (*display.Paint, error) {
	cs, err := parseColors(data, "colors")
	if err != nil {
		return nil, err
	}
	if cs != nil {
		if len(cs) == 0 {
			return nil, invalid("colors", "need at least one color")
		}
		p := display.PerSegment(cs)
		return &p, nil
	}
	c, err := parseColor(data, "color")
	if err != nil || c == nil {
		return nil, err
	}
	p := display.Single(*c)
	return &p, nil
}

func optionalInt(data []byte, key string) (int, error) {
	v, dt, err := lookup(data, key)
	if err != nil || dt == jsonparser.NotExist {
		return 0, err
	}
	if dt != jsonparser.Number {
		return 0, invalid(key, "want an integer")
	}
	n, err := jsonparser.ParseInt(v)
	if err != nil {
		return 0, invalid(key, "want an integer")
	}
	return int(n), nil
}

func (m *APIHandler) apiOff(w http.ResponseWriter, r *http.Request) {
	m.answer(w, r, m.ctl.Off())
}

func (m *APIHandler) apiShowCurrentTime(w http.ResponseWriter, r *http.Request) {
	m.answer(w, r, func() error {
		data, err := readBody(r)
		if err != nil {
			return err
		}
		p, err := parsePaint(data)
		if err != nil {
			return err
		}
		return m.ctl.ShowCurrentTime(p)
	}())
}

func (m *APIHandler) apiStartTimer(w http.ResponseWriter, r *http.Request) {
	m.answer(w, r, func() error {
		data, err := readBody(r)
		if err != nil {
			return err
		}
		var hms [3]int
		for i, k := range []string{"hours", "minutes", "seconds"} {
			if hms[i], err = optionalInt(data, k); err != nil {
				return err
			}
		}
		p, err := parsePaint(data)
		if err != nil {
			return err
		}
		return m.ctl.StartCountdown(hms[0], hms[1], hms[2], p)
	}())
}

func (m *APIHandler) apiCancelTimer(w http.ResponseWriter, r *http.Request) {
	m.answer(w, r, m.ctl.CancelCountdown())
}

func (m *APIHandler) apiChangeColor(w http.ResponseWriter, r *http.Request) {
	m.answer(w, r, func() error {
		data, err := readBody(r)
		if err != nil {
			return err
		}
		c, err := parseColor(data, "color")
		if err != nil {
			return err
		}
		if c == nil {
			return invalid("color", "required")
		}
		return m.ctl.SetColor(*c)
	}())
}

func (m *APIHandler) apiChangeMultipleColors(w http.ResponseWriter, r *http.Request) {
	m.answer(w, r, func() error {
		data, err := readBody(r)
		if err != nil {
			return err
		}
		cs, err := parseColors(data, "colors")
		if err != nil {
			return err
		}
		return m.ctl.SetColors(cs)
	}())
}

func (m *APIHandler) apiStartAnimation(w http.ResponseWriter, r *http.Request) {
	m.answer(w, r, func() error {
		data, err := readBody(r)
		if err != nil {
			return err
		}
		kind, err := jsonparser.GetString(data, "animation")
		if err != nil {
			return invalid("animation", "required")
		}
		cs, err := parseColors(data, "colors")
		if err != nil {
			return err
		}
		return m.ctl.StartAnimation(AnimationSpec{Kind: kind, Colors: cs})
	}())
}

func (m *APIHandler) apiStopAnimation(w http.ResponseWriter, r *http.Request) {
	m.answer(w, r, m.ctl.StopAnimation())
}

func (m *APIHandler) apiStopBlink(w http.ResponseWriter, r *http.Request) {
	m.answer(w, r, m.ctl.StopBlink())
}

func (m *APIHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	st, err := m.ctl.Status()
	if err != nil {
		writeAnswer(w, errorCode(err), apiResponse{Response: "BAD", Error: err.Error()})
		return
	}
	writeAnswer(w, http.StatusOK, apiResponse{Response: "OK", Status: toStatusView(st)})
}

func (m *APIHandler) rootHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/display.png", http.StatusFound)
}
