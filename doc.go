/*
Package pashmak implements an interpreter for the Pashmak scripting
language: a small register machine with global variables, one implicit
working register, labeled sections with conditional jumps, named callable
statement blocks (aliases), and textual inclusion of other script files.

A program is a sequence of statements terminated by semicolons. Each
statement is a keyword followed by argument text, e.g.

	set $n;
	mem 7 * 6;
	copy $n;
	print 'the answer is ' + str($n) + '\n';

Programs are prepared in three static phases before anything executes:
include expansion splices included files into the statement stream,
alias extraction registers callable blocks and removes them from the
top level, and label resolution builds a per-body table of section
offsets so that every jump target is known up front. The interpreter
then walks the top-level stream with an explicit instruction pointer
and a call stack for alias invocations.

The usual entry point is NewProgram followed by LoadFile and Run:

	p := pashmak.NewProgram()
	if err := p.LoadFile("main.pashm"); err != nil { ... }
	if err := p.Run(); err != nil { ... }
*/
package pashmak
