// SPDX-License-Identifier: MIT
// Package optimizer adapts gonum.org/v1/gonum/optimize into the
// bounded local-search collaborator the rest of this module treats as
// "assumed available" (the role COBYLA/SLSQP play upstream): given an
// objective, a starting point, and box bounds, it returns a local
// minimizer of the objective restricted to the box.
//
// Kind selects the flavor: COBYLA maps to gonum's derivative-free
// Nelder-Mead simplex method (closest idiomatic analogue to COBYLA's
// own derivative-free bounded search), and SLSQP maps to gonum's BFGS
// with a finite-difference gradient (gonum.org/v1/gonum/diff/fd);
// Minimize accepts no closed-form gradient.
//
// Bounds are enforced by clamping every candidate before it is handed
// to the user objective and adding a smooth quadratic penalty for the
// (pre-clamp) excess outside the box, so the underlying unconstrained
// method is pushed back toward the feasible region rather than
// wasting evaluations on points that will be discarded.
package optimizer
