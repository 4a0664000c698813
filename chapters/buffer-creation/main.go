// Command buffer-creation uploads data into a GPU buffer, copies it to a
// second buffer on the GPU, and reads the copy back to verify it.
package main

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	_ "github.com/gogpu/wgpu/hal/vulkan"
)

const bufSize = 256

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	defer instance.Destroy()

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	openDev, err := adapters[0].Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	device := openDev.Device
	queue := openDev.Queue
	defer device.Destroy()

	src, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "src",
		Size:  bufSize,
		Usage: gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create src buffer: %w", err)
	}
	defer device.DestroyBuffer(src)

	dst, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "dst",
		Size:  bufSize,
		Usage: gputypes.BufferUsageCopyDst | gputypes.BufferUsageMapRead,
	})
	if err != nil {
		return fmt.Errorf("create dst buffer: %w", err)
	}
	defer device.DestroyBuffer(dst)

	payload := bytes.Repeat([]byte{0xAB}, bufSize)
	queue.WriteBuffer(src, 0, payload)

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "copy_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("copy"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	encoder.CopyBufferToBuffer(src, dst, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: bufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer device.DestroyFence(fence)
	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, bufSize)
	if err := queue.ReadBuffer(dst, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	if !bytes.Equal(readback, payload) {
		return fmt.Errorf("readback does not match payload")
	}

	fmt.Printf("copied %d bytes through the GPU and verified them\n", bufSize)
	return nil
}
