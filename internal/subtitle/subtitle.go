package subtitle

// represents a single timed caption block
type Caption struct {
	Index   int
	StartMS int64
	EndMS   int64
	Lines   []string

	// styling decisions, populated by AssignAccents
	AccentIndex  int
	ChosenLine   int
	WordsColored int
}

func (c Caption) DurationMS() int64 {
	return c.EndMS - c.StartMS
}

// ParseError reports a subtitle file that is missing, unreadable, or
// not in the expected grammar.
type ParseError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "parse " + e.Path + ": " + e.Msg + ": " + e.Err.Error()
	}
	return "parse " + e.Path + ": " + e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
