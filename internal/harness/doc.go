// Package harness drives end-to-end rule-set scenarios from YAML files.
//
// A scenario names a symbol inventory, one or more inline rule scripts,
// the pipeline mode that combines them, and the test pairs to check
// against the compiled relation:
//
//	name: chained_tone
//	description: "Chained tone annotation resolves through the union pipeline."
//	symbols: ["n", "i", "j", "o", "{", "}", ">", "1", "2", "3", "4"]
//	mode: union
//	scripts:
//	  - |
//	    tone = [1234]
//	    {3\>1\>4} -> #3\>1\>4##14\>14# / _ [^#]*$tone$tone#
//	cases:
//	  - input: ni{3>1>4}jo14
//	    expected: ni3jo14##3>1>4##14>14
//	    intermediate: true
//	golden: chained_tone
//
// Each case runs through the validator; want selects whether the case is
// expected to pass (the default) or fail. When golden is set, a rendered
// report of every case's best derivation is compared against
// testdata/golden/<golden>.golden, so ranking regressions surface as
// golden diffs even while pass/fail stays green.
//
// Scenarios decode strictly: unknown YAML fields are rejected, which
// catches typos like "case:" for "cases:".
package harness
