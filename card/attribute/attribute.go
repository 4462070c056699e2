package attribute

import (
	"errors"
	"strings"
	"unicode"

	"github.com/zostay/go-vcard/card/transfer"
)

// Errors returned by Attribute methods.
var (
	// ErrNoValues is returned by Value when the attribute holds no values.
	ErrNoValues = errors.New("attribute has no values")

	// ErrNotSingleValued is returned by Value alongside the first value when
	// the attribute holds more than one value.
	ErrNotSingleValued = errors.New("attribute has more than one value")
)

// Well-known attribute names that change how the codec behaves.
const (
	Begin      = "BEGIN"
	End        = "END"
	Version    = "VERSION"
	Categories = "CATEGORIES"
	UID        = "UID"
)

// Attribute is a single vCard property: an optional group, a name, zero or
// more parameters, and one or more values. Values are stored unescaped and
// converted to UTF-8. The decoded form of the values is computed from the
// transfer encoding on demand and cached.
type Attribute struct {
	group  string
	name   string
	params []*Param
	values []string

	// decoded caches DecodedValues. It is cleared whenever values change.
	decoded [][]byte

	encoding    transfer.Encoding
	encodingSet bool
}

// New returns an attribute with the given group (which may be empty) and name
// and no values.
func New(group, name string) *Attribute {
	return &Attribute{group: group, name: name}
}

// NewWithValues returns an attribute with the given group, name, and values.
func NewWithValues(group, name string, values ...string) *Attribute {
	a := New(group, name)
	a.AddValues(values...)
	return a
}

// Clone returns a deep copy of the attribute. The decoded value cache is not
// copied; the copy recomputes it when needed.
func (a *Attribute) Clone() *Attribute {
	ps := make([]*Param, len(a.params))
	for i, p := range a.params {
		ps[i] = p.Clone()
	}

	vs := make([]string, len(a.values))
	copy(vs, a.values)

	return &Attribute{
		group:       a.group,
		name:        a.name,
		params:      ps,
		values:      vs,
		encoding:    a.encoding,
		encodingSet: a.encodingSet,
	}
}

// Group returns the group prefix of the attribute or an empty string.
func (a *Attribute) Group() string {
	return a.group
}

// Name returns the name of the attribute as it was given.
func (a *Attribute) Name() string {
	return a.name
}

// Is returns true if the attribute has the given name, compared
// case-insensitively.
func (a *Attribute) Is(name string) bool {
	return strings.EqualFold(a.name, name)
}

// Params returns the parameters of the attribute. Do not modify the returned
// slice.
func (a *Attribute) Params() []*Param {
	return a.params
}

// Param returns the named parameter or nil if it is not set.
func (a *Attribute) Param(name string) *Param {
	for _, p := range a.params {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// HasType returns true if the TYPE parameter contains the given type.
func (a *Attribute) HasType(t string) bool {
	p := a.Param(ParamType)
	return p != nil && p.HasValue(t)
}

// Values returns the values of the attribute. Do not modify the returned
// slice.
func (a *Attribute) Values() []string {
	return a.values
}

// IsSingleValued returns true if the attribute holds exactly one value.
func (a *Attribute) IsSingleValued() bool {
	return len(a.values) == 1
}

// Value returns the first value of the attribute.
//
// It returns ErrNoValues with an empty string if there are no values. If there
// is more than one value, the first is returned with ErrNotSingleValued.
func (a *Attribute) Value() (string, error) {
	if len(a.values) == 0 {
		return "", ErrNoValues
	}
	if len(a.values) > 1 {
		return a.values[0], ErrNotSingleValued
	}
	return a.values[0], nil
}

// Encoding returns the transfer encoding of the attribute.
func (a *Attribute) Encoding() transfer.Encoding {
	return a.encoding
}

// EncodingSet returns true once an ENCODING parameter has been applied.
func (a *Attribute) EncodingSet() bool {
	return a.encodingSet
}

// DecodedValues returns the values transformed from the transfer encoding of
// the attribute into binary form. The result is computed once and cached until
// the values change.
func (a *Attribute) DecodedValues() ([][]byte, error) {
	if a.decoded != nil {
		return a.decoded, nil
	}

	ds := make([][]byte, len(a.values))
	for i, v := range a.values {
		d, err := transfer.Decode(a.encoding, v)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}

	a.decoded = ds
	return ds, nil
}

// ValueDecoded returns the first decoded value. It returns ErrNoValues if
// there are no values.
func (a *Attribute) ValueDecoded() ([]byte, error) {
	ds, err := a.DecodedValues()
	if err != nil {
		return nil, err
	}
	if len(ds) == 0 {
		return nil, ErrNoValues
	}
	return ds[0], nil
}

// AddValue appends a value. It always returns true.
func (a *Attribute) AddValue(v string) bool {
	a.values = append(a.values, v)
	a.decoded = nil
	return true
}

// AddValues appends each of the given values. It returns true if any value was
// added.
func (a *Attribute) AddValues(vs ...string) bool {
	if len(vs) == 0 {
		return false
	}
	a.values = append(a.values, vs...)
	a.decoded = nil
	return true
}

// AddValueDecoded encodes the binary data b according to the transfer encoding
// of the attribute and appends the result as a value.
func (a *Attribute) AddValueDecoded(b []byte) (bool, error) {
	v, err := transfer.Encode(a.encoding, b)
	if err != nil {
		return false, err
	}
	return a.AddValue(v), nil
}

// RemoveValue removes every value equal to v. It returns true if anything was
// removed.
func (a *Attribute) RemoveValue(v string) bool {
	kept := a.values[:0]
	for _, av := range a.values {
		if av != v {
			kept = append(kept, av)
		}
	}

	if len(kept) == len(a.values) {
		return false
	}

	a.values = kept
	a.decoded = nil
	return true
}

// RemoveValues removes all values. It returns true if there were any.
func (a *Attribute) RemoveValues() bool {
	if len(a.values) == 0 {
		return false
	}
	a.values = nil
	a.decoded = nil
	return true
}

// AddParam attaches a parameter to the attribute.
//
// An ENCODING parameter is not stored. Instead, the first one sets the
// transfer encoding of the attribute and any later one is ignored. If another
// parameter with the same name is already present, the new values are merged
// into it, skipping duplicates.
//
// It returns true if the attribute changed.
func (a *Attribute) AddParam(p *Param) bool {
	changed, _ := a.addParam(p)
	return changed
}

// AddParamWithValue is a shortcut for AddParam(NewParam(name, values...)).
func (a *Attribute) AddParamWithValue(name string, values ...string) bool {
	return a.AddParam(NewParam(name, values...))
}

// addParam does the work of AddParam and also returns a description of any
// problem with an ENCODING parameter for the reader to log.
func (a *Attribute) addParam(p *Param) (bool, string) {
	if strings.EqualFold(p.Name, ParamEncoding) {
		return a.applyEncoding(p)
	}

	if ep := a.Param(p.Name); ep != nil {
		return ep.merge(p), ""
	}

	a.params = append(a.params, p.Clone())
	return true, ""
}

func (a *Attribute) applyEncoding(p *Param) (bool, string) {
	if a.encodingSet {
		return false, "ENCODING specified twice"
	}

	// the first ENCODING wins even when it cannot be used
	a.encodingSet = true
	a.decoded = nil

	if len(p.Values) == 0 {
		return true, "ENCODING parameter has no value"
	}

	e, ok := transfer.Lookup(p.Values[0])
	if !ok {
		return true, "unknown ENCODING value"
	}

	a.encoding = e
	return true, ""
}

// RemoveParam removes the named parameter. It returns true if it was present.
func (a *Attribute) RemoveParam(name string) bool {
	for i, p := range a.params {
		if strings.EqualFold(p.Name, name) {
			a.params = append(a.params[:i], a.params[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveParamValue removes a single value from the named parameter. A
// parameter left with no values is removed entirely. It returns true if
// anything was removed.
func (a *Attribute) RemoveParamValue(name, value string) bool {
	p := a.Param(name)
	if p == nil {
		return false
	}

	kept := p.Values[:0]
	for _, v := range p.Values {
		if !strings.EqualFold(v, value) {
			kept = append(kept, v)
		}
	}

	if len(kept) == len(p.Values) {
		return false
	}

	p.Values = kept
	if len(p.Values) == 0 {
		a.RemoveParam(name)
	}
	return true
}

// isAlnum matches the letters and digits permitted in group, name, and
// parameter tokens.
func isAlnum(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c)
}

func isNameChar(c rune) bool {
	return isAlnum(c) || c == '-' || c == '_'
}
