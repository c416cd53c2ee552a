//go:build js && wasm

// Command bchwasm exposes the codec to a JavaScript host. The host
// constructs codec handles and moves byte buffers across the boundary as
// Uint8Arrays.
package main

import (
	"syscall/js"

	"github.com/litebch/litebch-go/bch"
)

var (
	codecs     = map[int]*bch.Codec{}
	nextHandle = 1
)

func jsError(err error) js.Value {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

// litebchNew(n, t) -> {handle, n, k, t, dataBytes, eccBytes} | {error}
func litebchNew(this js.Value, args []js.Value) interface{} {
	c, err := bch.New(args[0].Int(), args[1].Int())
	if err != nil {
		return jsError(err)
	}
	h := nextHandle
	nextHandle++
	codecs[h] = c
	return js.ValueOf(map[string]interface{}{
		"handle":    h,
		"n":         c.N(),
		"k":         c.K(),
		"t":         c.T(),
		"dataBytes": c.DataBytes(),
		"eccBytes":  c.ECCBytes(),
	})
}

// litebchFree(handle)
func litebchFree(this js.Value, args []js.Value) interface{} {
	delete(codecs, args[0].Int())
	return js.Undefined()
}

// litebchEncode(handle, data: Uint8Array) -> ecc: Uint8Array | {error}
func litebchEncode(this js.Value, args []js.Value) interface{} {
	c, ok := codecs[args[0].Int()]
	if !ok {
		return js.Null()
	}
	data := make([]byte, args[1].Length())
	js.CopyBytesToGo(data, args[1])
	ecc := make([]byte, c.ECCBytes())
	if err := c.EncodeBytes(data, ecc); err != nil {
		return jsError(err)
	}
	out := js.Global().Get("Uint8Array").New(len(ecc))
	js.CopyBytesToJS(out, ecc)
	return out
}

// litebchDecode(handle, data, ecc: Uint8Array) ->
// {data, ecc, corrected} | {error}
func litebchDecode(this js.Value, args []js.Value) interface{} {
	c, ok := codecs[args[0].Int()]
	if !ok {
		return js.Null()
	}
	data := make([]byte, args[1].Length())
	js.CopyBytesToGo(data, args[1])
	ecc := make([]byte, args[2].Length())
	js.CopyBytesToGo(ecc, args[2])
	n, err := c.DecodeBytes(data, ecc)
	if err != nil {
		return jsError(err)
	}
	outData := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(outData, data)
	outEcc := js.Global().Get("Uint8Array").New(len(ecc))
	js.CopyBytesToJS(outEcc, ecc)
	return js.ValueOf(map[string]interface{}{
		"data":      outData,
		"ecc":       outEcc,
		"corrected": n,
	})
}

func main() {
	js.Global().Set("litebchNew", js.FuncOf(litebchNew))
	js.Global().Set("litebchFree", js.FuncOf(litebchFree))
	js.Global().Set("litebchEncode", js.FuncOf(litebchEncode))
	js.Global().Set("litebchDecode", js.FuncOf(litebchDecode))
	select {}
}
