// Package harness runs lenslab conformance scenarios.
//
// A scenario is a YAML file naming an input line (inline or as a file
// relative to the scenario) plus expectations about the result:
//
//	name: sample
//	description: canonical puzzle example
//	line: "rn=1,cm-,qp=3,cm=2,qp-,pc=4,ot=9,ab=5,pc-,pc=6,ot=7"
//	expect:
//	  part1: 1320
//	  part2: 145
//	assertions:
//	  - type: box_contents
//	    box: 3
//	    entries: [{label: ot, focal_length: 7}, {label: ab, focal_length: 5}, {label: pc, focal_length: 6}]
//	  - type: outcome_count
//	    outcome: replaced
//	    count: 1
//
// Each scenario runs on a fresh simulator with a trace recorder attached.
// The recorded trace and final box layout can be compared against golden
// files with RunWithGolden.
package harness
