// Package serialization implements the whitespace-separated integer text
// format shared by the CLI, the coordinator and worker processes.
//
// Problem stream:
//
//	N x y
//	<N filters: 3 channel blocks of x rows of y integers>
//	X Y
//	<3 channel blocks of X rows of Y integers>   (unpadded)
//
// Report stream:
//
//	<per filter, in order: n rows of m integers, blank line after each block>
//	<one elapsed time per worker, in milliseconds>   (only when workers ran)
//	<total elapsed time in milliseconds>
//
// A worker process reads a problem stream on stdin and writes a report
// stream without the worker line, its own elapsed time being the total.
//
// Example usage:
//
//	problem, err := serialization.NewDecoder(os.Stdin).DecodeProblem()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	enc := serialization.NewEncoder(os.Stdout)
//	if err := enc.EncodeReport(report); err != nil {
//	    log.Fatal(err)
//	}
package serialization
