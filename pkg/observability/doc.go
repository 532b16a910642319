/*
Package observability provides tools for monitoring machine runs.

It includes lifecycle hooks that log transitions and rejections, and a combinator that
fans one event out to several sets of hooks, so metrics and logging can observe the
same machine.
*/
package observability
