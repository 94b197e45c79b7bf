/*
Package gds implements a minimal GDSII stream format encoder.

A stream is a sequence of records. Each record starts with a 4-byte header: a
big-endian uint16 holding the total record length (header included), one byte
of record type and one byte of data type. The payload follows, padded to an
even length.

Only what a flat, rectangle-only layout needs is supported: a library with
one or more structures, each holding BOUNDARY elements. The record sequence
written is

	HEADER BGNLIB LIBNAME UNITS
	  (BGNSTR STRNAME (BOUNDARY LAYER DATATYPE XY ENDEL)* ENDSTR)*
	ENDLIB

Floating point values in UNITS use the GDSII 8-byte real: a sign bit, a
7-bit excess-64 base-16 exponent and a 56-bit mantissa. There is no decoder.
*/
package gds
