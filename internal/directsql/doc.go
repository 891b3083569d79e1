// Package directsql compiles partition filter trees straight to SQL over
// the stored encoded partition name, bypassing the object-query layer.
//
// The generated fragment is a WHERE-clause predicate on
// "PARTITIONS"."PART_NAME" using named :filter_param_n placeholders; the
// accompanying filterir.Params map carries the bound values in the order
// they were generated. The same equality-optimization cases apply as in
// the JDOQL backend, rendered with substr/instr instead of the string
// method calls.
//
// Only partition filters have a direct SQL path. Table attribute filters
// go through the object-query layer and are rejected here.
package directsql
