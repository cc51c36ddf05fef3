package zcl

// CommandArg pairs a command parameter with the value it carries for an
// outgoing call, or the expectation it must satisfy for an incoming one.
// Exactly one of Value or Validator is meaningful at a time; if both are
// nil/unset, the argument is "don't care" and matches anything received.
type CommandArg struct {
	Name      string
	Type      DataType
	Value     any
	Validator Validator
}

// Invocation is a CommandPrototype bound to concrete positional argument
// values (or, for an expectation, to validators). It is produced by
// CommandPrototype.Bind or CommandPrototype.BindExpectation and is safe to
// reuse for both outgoing dispatch and incoming expectation matching,
// since neither constructor encodes bytes at bind time.
type Invocation struct {
	ClusterCode uint16
	Code        uint8
	Name        string
	Args        []CommandArg
}

// Bind pairs each positional value in values with the corresponding
// CommandParam, in order, producing an Invocation suitable for
// Controller.SendZCLCommand. It fails with an *ArityError if
// len(values) != len(p.Params). The returned Invocation's Args slice is a
// fresh copy: mutating values after Bind returns cannot reach into it.
func (p *CommandPrototype) Bind(values ...any) (*Invocation, error) {
	if len(values) != len(p.Params) {
		return nil, &ArityError{CommandName: p.Name, Params: p.Params, Got: len(values)}
	}

	args := make([]CommandArg, len(p.Params))
	for i, param := range p.Params {
		args[i] = CommandArg{
			Name:  param.Name,
			Type:  param.Type,
			Value: values[i],
		}
	}

	return &Invocation{
		ClusterCode: p.ClusterCode,
		Code:        p.Code,
		Name:        p.Name,
		Args:        args,
	}, nil
}

// BindExpectation pairs each positional expectation in expectations with
// the corresponding CommandParam, producing an Invocation suitable for
// Controller.ExpectZCLCommand. Each expectation may be a Validator, nil
// (match anything), or a concrete value (treated as Equal(that value)).
func (p *CommandPrototype) BindExpectation(expectations ...any) (*Invocation, error) {
	if len(expectations) != len(p.Params) {
		return nil, &ArityError{CommandName: p.Name, Params: p.Params, Got: len(expectations)}
	}

	args := make([]CommandArg, len(p.Params))
	for i, param := range p.Params {
		arg := CommandArg{Name: param.Name, Type: param.Type}
		switch e := expectations[i].(type) {
		case nil:
			// don't care
		case Validator:
			arg.Validator = e
		default:
			arg.Value = e
		}
		args[i] = arg
	}

	return &Invocation{
		ClusterCode: p.ClusterCode,
		Code:        p.Code,
		Name:        p.Name,
		Args:        args,
	}, nil
}
