package exception

import "github.com/next-trace/scg-exception/contract"

// Code is a plain classification code value.
type Code struct {
	code        string
	description string
}

var _ contract.Code = Code{}

// NewCode returns a classification code.
func NewCode(code, description string) Code {
	return Code{code: code, description: description}
}

func (c Code) Code() string        { return c.code }
func (c Code) Description() string { return c.description }
func (c Code) String() string      { return c.code }
