// Package safety coordinates event admission and incident response.
//
// Events gate membership behind short invite codes, members file incident
// reports, and organizers claim and resolve them. The packages underneath
// split along domain rules, authorization policy, persistence, and the
// operation surface.
package safety
