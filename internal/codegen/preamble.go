package codegen

import "fmt"

// writePreamble emits the fixed runtime-extern declarations and the print
// helper definitions (spec §4.E point 1, spec §6). The aggregate helpers
// sum/min/max/mean/count are only declared here, not defined.
func (e *Emitter) writePreamble() {
	e.buf.WriteString("; ModuleID = 'dlc'\n\n")
	e.buf.WriteString("declare i32 @printf(i8*, ...)\n")
	e.buf.WriteString("declare i8* @malloc(i64)\n")
	e.buf.WriteString("declare void @free(i8*)\n\n")

	e.buf.WriteString("declare i8* @datalang_load(i8*)\n")
	e.buf.WriteString("declare void @datalang_save(i8*, i8*)\n")
	e.buf.WriteString("declare i8* @datalang_select(i8*, i8**, i64)\n")
	e.buf.WriteString("declare i8* @datalang_groupby(i8*, i8**, i64)\n")
	e.buf.WriteString("declare i8* @datalang_df_filter_numeric(i8*, i8*, i64)\n")
	e.buf.WriteString("declare i8* @datalang_df_filter_string(i8*, i8*, i8*)\n")
	e.buf.WriteString("declare double @datalang_df_column_double(i8*, i8*, i64)\n")
	e.buf.WriteString("declare void @datalang_print_dataframe(i8*)\n")
	e.buf.WriteString("declare i8* @datalang_df_create()\n")
	e.buf.WriteString("declare void @datalang_df_add_row(i8*, i8*)\n")
	e.buf.WriteString("declare i8* @datalang_format_int(i64)\n")
	e.buf.WriteString("declare i8* @datalang_format_float(double)\n")
	e.buf.WriteString("declare i8* @datalang_format_bool(i1)\n")
	e.buf.WriteString("declare void @datalang_free_dataframe(i8*)\n")
	e.buf.WriteString("declare i8* @__str_concat(i8*, i8*)\n\n")

	e.buf.WriteString("declare i64 @sum({i64, i64*})\n")
	e.buf.WriteString("declare i64 @min({i64, i64*})\n")
	e.buf.WriteString("declare i64 @max({i64, i64*})\n")
	e.buf.WriteString("declare double @mean({i64, i64*})\n")
	e.buf.WriteString("declare i64 @count({i64, i64*})\n\n")

	e.buf.WriteString("@.fmt.int = private unnamed_addr constant [5 x i8] c\"%lld\\0A\\00\"\n")
	e.buf.WriteString("@.fmt.float = private unnamed_addr constant [4 x i8] c\"%f\\0A\\00\"\n")
	e.buf.WriteString("@.fmt.string = private unnamed_addr constant [4 x i8] c\"%s\\0A\\00\"\n")
	e.buf.WriteString("@.fmt.true = private unnamed_addr constant [5 x i8] c\"true\\00\"\n")
	e.buf.WriteString("@.fmt.false = private unnamed_addr constant [6 x i8] c\"false\\00\"\n\n")

	e.buf.WriteString(`define void @print_int(i64 %v) {
entry:
  %fmt = getelementptr [5 x i8], [5 x i8]* @.fmt.int, i64 0, i64 0
  call i32 (i8*, ...) @printf(i8* %fmt, i64 %v)
  ret void
}

define void @print_float(double %v) {
entry:
  %fmt = getelementptr [4 x i8], [4 x i8]* @.fmt.float, i64 0, i64 0
  call i32 (i8*, ...) @printf(i8* %fmt, double %v)
  ret void
}

define void @print_string(i8* %v) {
entry:
  %fmt = getelementptr [4 x i8], [4 x i8]* @.fmt.string, i64 0, i64 0
  call i32 (i8*, ...) @printf(i8* %fmt, i8* %v)
  ret void
}

define void @print_bool(i1 %v) {
entry:
  br i1 %v, label %t, label %f
t:
  %tfmt = getelementptr [5 x i8], [5 x i8]* @.fmt.true, i64 0, i64 0
  call i32 (i8*, ...) @printf(i8* %tfmt)
  ret void
f:
  %ffmt = getelementptr [6 x i8], [6 x i8]* @.fmt.false, i64 0, i64 0
  call i32 (i8*, ...) @printf(i8* %ffmt)
  ret void
}

`)
}

// writeStringSection appends the trailing interned-string-literal globals
// (spec §4.E point 3).
func (e *Emitter) writeStringSection() {
	if len(e.strOrder) == 0 {
		return
	}
	e.buf.WriteString("\n; string literals\n")
	for i, s := range e.strOrder {
		escaped, length := escapeIRString(s)
		fmt.Fprintf(&e.buf, "@.str.%d = private unnamed_addr constant [%d x i8] c\"%s\"\n", i, length, escaped)
	}
}
