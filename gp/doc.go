// SPDX-License-Identifier: MIT
// Package gp fits and evaluates a single Gaussian Process regression
// model: training optimizes the reduced (concentrated) log-likelihood
// over correlation length-scales theta under bound constraints, then
// caches the Cholesky/QR-derived inner parameters (beta, gamma,
// sigma^2, Lr, Ft, Rf) an immutable, trained GP predicts from.
//
// A GP is created by Fit and is immutable thereafter; retraining
// produces a new GP and the old one is simply dropped.
package gp
