/*
Package newick provides facilities for reading and writing trees in the
Newick format. The format used is roughly equivalent to the conventions
established here:
http://evolution.genetics.washington.edu/phylip/newick_doc.html.

Quoted labels ('Homo sapiens', with '' as an escaped quote) and bracketed
comments ([&R], [&support=3]) are supported. Comments are discarded. Blanks
inside unquoted labels are preserved, but leading and trailing whitespace of
every label is not significant.

Internal nodes in the trees consumed by exsub carry integer support values as
their labels, e.g., "((A,B)5,C)2;". This package does not interpret labels;
it only reads and writes them.

An informal description of the Newick format can be found here:
http://evolution.genetics.washington.edu/phylip/newicktree.html.
*/
package newick
