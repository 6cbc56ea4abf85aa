// Command heapreplay drives a heap.Heap from a line-oriented trace so the
// allocator's behavior can be inspected by hand instead of through unit
// tests. It is a thin consumer of the heap package's public API; it does not
// participate in placement decisions itself.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/provider"
)

func main() {
	args := os.Args[1:]

	if len(args) > 0 && (args[0] == "--help" || args[0] == "-h") {
		printHelp()
		os.Exit(0)
	}

	verbose := false
	filtered := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--verbose" || a == "-v" {
			verbose = true
			continue
		}
		filtered = append(filtered, a)
	}

	var in io.Reader = os.Stdin
	if len(filtered) > 0 {
		f, err := os.Open(filtered[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "heapreplay: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	if err := replay(in, os.Stdout, verbose); err != nil {
		fmt.Fprintf(os.Stderr, "heapreplay: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("heapreplay - replay an allocator trace against heapkit's heap package")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  heapreplay [-v] [trace-file]")
	fmt.Println()
	fmt.Println("  Reads from stdin when no trace-file is given.")
	fmt.Println()
	fmt.Println("TRACE LINES:")
	fmt.Println("  a <id> <size>          allocate size bytes, bind the ref to id")
	fmt.Println("  f <id>                 release the allocation bound to id")
	fmt.Println("  r <id> <size>          reallocate id's block to size bytes")
	fmt.Println("  z <id> <count> <size>  zeroed-allocate count*size bytes, bind to id")
	fmt.Println("  c                      run the structural checker")
	fmt.Println("  # ...                  comment, ignored")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -v, --verbose  print every operation as it runs")
	fmt.Println("  -h, --help     show this help message")
}

type summary struct {
	requested   int
	ops         int
	checks      int
	wilderness  int
	heapBytes   int
	utilization float64
}

func replay(r io.Reader, w io.Writer, verbose bool) error {
	p := provider.NewSlice(0)
	h, err := heap.New(p, heap.Config{})
	if err != nil {
		return fmt.Errorf("initializing heap: %w", err)
	}

	ids := make(map[string]heap.Ref)
	live := make(map[string]int)
	sum := summary{}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		if err := applyOp(h, ids, live, &sum, fields, verbose, w); err != nil {
			return fmt.Errorf("line %d %q: %w", line, text, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	sum.heapBytes = len(p.Bytes())
	livePayload := 0
	for _, n := range live {
		livePayload += n
	}
	if sum.heapBytes > 0 {
		sum.utilization = float64(livePayload) / float64(sum.heapBytes)
	}

	fmt.Fprintf(w, "ops=%d checks=%d requested=%d live=%d heap=%d utilization=%.3f\n",
		sum.ops, sum.checks, sum.requested, livePayload, sum.heapBytes, sum.utilization)
	return nil
}

func applyOp(h *heap.Heap, ids map[string]heap.Ref, live map[string]int, sum *summary, fields []string, verbose bool, w io.Writer) error {
	if len(fields) == 0 {
		return nil
	}
	op := fields[0]
	sum.ops++

	switch op {
	case "a":
		id, size, err := idAndInt(fields, "a <id> <size>")
		if err != nil {
			return err
		}
		ref, err := h.Allocate(size)
		if err != nil {
			return err
		}
		ids[id] = ref
		live[id] = size
		sum.requested += size
		if verbose {
			fmt.Fprintf(w, "a %s size=%d -> ref=%d\n", id, size, ref)
		}

	case "f":
		if len(fields) != 2 {
			return fmt.Errorf("usage: f <id>")
		}
		id := fields[1]
		ref, ok := ids[id]
		if !ok {
			return fmt.Errorf("unknown id %q", id)
		}
		if err := h.Release(ref); err != nil {
			return err
		}
		delete(ids, id)
		delete(live, id)
		if verbose {
			fmt.Fprintf(w, "f %s\n", id)
		}

	case "r":
		id, size, err := idAndInt(fields, "r <id> <size>")
		if err != nil {
			return err
		}
		ref, ok := ids[id]
		if !ok {
			return fmt.Errorf("unknown id %q", id)
		}
		next, err := h.Reallocate(ref, size)
		if err != nil {
			return err
		}
		if next == 0 {
			delete(ids, id)
			delete(live, id)
		} else {
			ids[id] = next
			live[id] = size
		}
		sum.requested += size
		if verbose {
			fmt.Fprintf(w, "r %s size=%d -> ref=%d\n", id, size, next)
		}

	case "z":
		if len(fields) != 4 {
			return fmt.Errorf("usage: z <id> <count> <size>")
		}
		id := fields[1]
		count, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("bad count: %w", err)
		}
		size, err := strconv.Atoi(fields[3])
		if err != nil {
			return fmt.Errorf("bad size: %w", err)
		}
		ref, err := h.ZeroedAllocate(count, size)
		if err != nil {
			return err
		}
		ids[id] = ref
		live[id] = count * size
		sum.requested += count * size
		if verbose {
			fmt.Fprintf(w, "z %s count=%d size=%d -> ref=%d\n", id, count, size, ref)
		}

	case "c":
		sum.checks++
		if err := h.Check(verbose); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintln(w, "c ok")
		}

	default:
		return fmt.Errorf("unknown op %q", op)
	}
	return nil
}

func idAndInt(fields []string, usage string) (string, int, error) {
	if len(fields) != 3 {
		return "", 0, fmt.Errorf("usage: %s", usage)
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", 0, fmt.Errorf("bad size: %w", err)
	}
	return fields[1], n, nil
}
