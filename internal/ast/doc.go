// Package ast defines the parameter expression tree of OpenQASM gate
// arguments and its evaluator.
//
// Evaluation is pure and total over bound trees: every node maps to an IEEE-754
// double, with division by zero, negative square roots and the like producing
// ±Inf or NaN rather than errors. Identifiers are the only nodes without a
// value; evaluate a tree containing them only after Bind.
package ast
