/*
Package polyrange provides piecewise polynomials of one real variable.

The library is organized in three packages:

  - interval: bounded ranges with open or closed ends, their relations and cuts.
  - polynomial: dense polynomials with float64 coefficients, their arithmetic, rendering and parsing.
  - piecewise: polynomials bound to disjoint ranges, with evaluation, combination and YAML definitions.

The command cmd/pwpoly loads, combines and evaluates piecewise polynomial definitions.
*/
package polyrange
