// Package drc runs the advisory design-rule checks on a logo bitmap.
//
// Two local patterns are known to upset downstream DRC decks when a bitmap is
// drawn pixel-for-pixel in metal:
//
//   - Diagonal touches: a 2×2 window that is an exact checkerboard. The two
//     lit pixels meet at a single corner, which is a zero-width connection.
//   - Lone pixels: a pixel whose state differs from all four cardinal
//     neighbours. Pixels outside the bitmap count as unlit, so an unlit pixel
//     on the border is never lone, while an isolated lit pixel always is.
//
// [Check] runs the diagonal scan first and the lone-pixel scan second, and
// returns a [Report]. Findings never stop a conversion; callers log a warning
// when [Report.Total] is non-zero.
//
// Counting is always done. Individual [Finding] values are only collected
// with [WithFindings], since large noisy images can produce many of them.
package drc
