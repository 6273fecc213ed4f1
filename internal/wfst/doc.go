// Package wfst implements weighted finite-state transducers over the
// tropical semiring, together with the algebra the rule compiler is built
// on: concatenation, union, closure, composition, determinization,
// minimization, epsilon removal, path decoding, and text/dot serialization.
//
// An Automaton is a mutable value. Combining operations either mutate the
// receiver in place (Concat, Union, Close, Minimize, RemoveEpsilons,
// Optimize, SortArcs) or consume their operands and return a fresh machine
// (Compose, Determinize). Callers that need an operand again after handing
// it to an operation must Clone it first; nothing in this package aliases
// automata behind the caller's back.
//
// All automata that are combined must share the same *SymbolTable instance.
// The table is read-only after construction and may be referenced by any
// number of automata.
package wfst
