// Command respdump reads RESP2/RESP3 bytes from stdin (or a file) and
// prints each decoded reply, one per line, until EOF.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"k8s.io/klog"

	"github.com/mediocregopher/respdecode/resp"
)

var (
	path          string
	returnBuffers bool
	stringNumbers bool
	bigInt        bool
	chunkSize     int
)

func init() {
	flag.StringVar(&path, "f", "-", "file to read from, - for stdin")
	flag.BoolVar(&returnBuffers, "return-buffers", false, "deliver bulk strings as raw bytes instead of text")
	flag.BoolVar(&stringNumbers, "string-numbers", false, "deliver integers/big numbers as decimal text")
	flag.BoolVar(&bigInt, "big-int", false, "deliver integers as arbitrary-precision numbers")
	flag.IntVar(&chunkSize, "chunk-size", 4096, "read buffer size fed to the parser per Feed call")
	flag.Parse()
}

func main() {
	in := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			klog.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	var opts []resp.ParserOpt
	if returnBuffers {
		opts = append(opts, resp.WithReturnBuffers())
	}
	if stringNumbers {
		opts = append(opts, resp.WithStringNumbers())
	}
	if bigInt {
		opts = append(opts, resp.WithBigInt())
	}
	opts = append(opts,
		resp.WithOnPush(func(r resp.Reply) { printReply("push", r) }),
		resp.WithOnAttribute(func(r resp.Reply) { printReply("attribute", r) }),
		resp.WithOnFatal(func(err *resp.ProtocolError) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}),
	)

	p, err := resp.NewParser(resp.Opts{
		OnReply: func(r resp.Reply) { printReply("reply", r) },
		OnError: func(err *resp.ReplyError) { printReply("error", resp.Reply{Kind: resp.KindError, ErrMsg: err.Error()}) },
	}, opts...)
	if err != nil {
		klog.Fatal(err)
	}
	defer p.Close()

	buf := make([]byte, chunkSize)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			p.Feed(chunk)
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			klog.Fatal(err)
		}
	}
}

func printReply(label string, r resp.Reply) {
	fmt.Printf("%s: %s\n", label, formatReply(r))
}

func formatReply(r resp.Reply) string {
	switch r.Kind {
	case resp.KindSimpleString, resp.KindBulkString:
		if r.Bytes != nil {
			return fmt.Sprintf("%s(%q)", r.Kind, r.Bytes)
		}
		return fmt.Sprintf("%s(%q)", r.Kind, r.Str)
	case resp.KindInteger:
		if r.IsText {
			return fmt.Sprintf("Integer(%s)", r.Str)
		}
		if r.Big != nil {
			return fmt.Sprintf("Integer(%s)", r.Big.String())
		}
		return fmt.Sprintf("Integer(%d)", r.Int)
	case resp.KindDouble:
		if r.IsText {
			return fmt.Sprintf("Double(%s)", r.Str)
		}
		return fmt.Sprintf("Double(%v)", r.Float)
	case resp.KindBoolean:
		return fmt.Sprintf("Boolean(%v)", r.Bool)
	case resp.KindBigNumber:
		if r.IsText {
			return fmt.Sprintf("BigNumber(%s)", r.Str)
		}
		return fmt.Sprintf("BigNumber(%s)", r.Big.String())
	case resp.KindNull:
		return "Null"
	case resp.KindArray, resp.KindSet:
		elems := make([]string, len(r.Array))
		for i, e := range r.Array {
			elems[i] = formatReply(e)
		}
		return fmt.Sprintf("%s%v", r.Kind, elems)
	case resp.KindMap:
		pairs := make([]string, len(r.Pairs))
		for i, p := range r.Pairs {
			pairs[i] = fmt.Sprintf("%s:%s", formatReply(p.Key), formatReply(p.Value))
		}
		return fmt.Sprintf("Map%v", pairs)
	case resp.KindError:
		if r.ErrCode != "" {
			return fmt.Sprintf("Error(%s %s)", r.ErrCode, r.ErrMsg)
		}
		return fmt.Sprintf("Error(%s)", r.ErrMsg)
	default:
		return "?"
	}
}
