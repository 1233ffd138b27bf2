package dot

// Element is implemented by everything that carries attributes: nodes,
// edges and graphs of every role.
type Element interface {
	Attrs() *Attrs
	Get(key string) (string, bool)
	Set(key, value string)
	SetFlag(key string)
	AddStyle(token string)
	Style() string
}

var (
	_ Element = (*Node)(nil)
	_ Element = (*Edge)(nil)
	_ Element = (*Graph)(nil)
)

// attributed is embedded by every element type.
type attributed struct {
	attrs Attrs
}

// Attrs returns the element's attribute set.
func (a *attributed) Attrs() *Attrs { return &a.attrs }

// Get returns an attribute value.
func (a *attributed) Get(key string) (string, bool) { return a.attrs.Get(key) }

// Set stores an attribute value.
func (a *attributed) Set(key, value string) { a.attrs.Set(key, value) }

// SetFlag stores a bare attribute.
func (a *attributed) SetFlag(key string) { a.attrs.SetFlag(key) }

// AddStyle appends a token to the style attribute.
func (a *attributed) AddStyle(token string) { a.attrs.AddStyle(token) }

// Style returns the style attribute, or "" when unset.
func (a *attributed) Style() string {
	s, _ := a.attrs.Get("style")
	return s
}
