package hook

// Finding is a single problem a hook reported in a file.
type Finding struct {
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Hook    string `json:"hook"`
	Message string `json:"message"`
	Fixed   bool   `json:"fixed,omitempty"`
}
