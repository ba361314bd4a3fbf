// Package preflight runs the checks behind `filesort doctor`: source and
// output directory permissions and the health of the move log.
package preflight
