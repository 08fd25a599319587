package menu

// Directive is handed to interception callbacks next to the event they
// intercept. The caller inspects it once the callback returns.
type Directive struct {
	// LastActive is the item focus returns to if the menu closes.
	LastActive *Item

	prevented bool
	requested bool
	close     bool
}

// PreventClose suppresses the default close.
func (d *Directive) PreventClose() {
	d.prevented = true
}

// RequestClose demands the menu close (true) or stay open (false),
// overriding both the default and PreventClose.
func (d *Directive) RequestClose(close bool) {
	d.requested = true
	d.close = close
}

// Prevented reports whether PreventClose was called.
func (d *Directive) Prevented() bool {
	return d.prevented
}

// Requested returns the explicit close request, if any.
func (d *Directive) Requested() (close bool, ok bool) {
	return d.close, d.requested
}

// ShouldClose resolves the directive against the default decision.
func (d *Directive) ShouldClose(byDefault bool) bool {
	if d.requested {
		return d.close
	}
	if d.prevented {
		return false
	}
	return byDefault
}

// Selection is the directive passed to item select handlers.
type Selection struct {
	Directive
	Item *Item
}
