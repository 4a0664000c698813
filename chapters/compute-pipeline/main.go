// Command compute-pipeline runs a compute shader that multiplies 65536
// integers by 12 and verifies every result on the CPU.
package main

import (
	"encoding/binary"
	"fmt"
	"log"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	_ "github.com/gogpu/wgpu/hal/vulkan"
)

const multiplyShaderSource = `
@group(0) @binding(0)
var<storage, read_write> data: array<u32>;

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    data[id.x] = data[id.x] * 12u;
}
`

const (
	elemCount = 65536
	dataSize  = elemCount * 4
)

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

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "multiply",
		Source: hal.ShaderSource{WGSL: multiplyShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile shader: %w", err)
	}
	defer device.DestroyShaderModule(shader)

	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "multiply_bgl",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	defer device.DestroyBindGroupLayout(bindLayout)

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "multiply_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	defer device.DestroyPipelineLayout(pipeLayout)

	pipeline, err := device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "multiply",
		Layout: pipeLayout,
		Compute: hal.ComputeState{
			Module:     shader,
			EntryPoint: "main",
		},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	defer device.DestroyComputePipeline(pipeline)

	dataBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "data",
		Size:  dataSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create data buffer: %w", err)
	}
	defer device.DestroyBuffer(dataBuf)

	stagingBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "staging",
		Size:  dataSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer device.DestroyBuffer(stagingBuf)

	input := make([]byte, dataSize)
	for i := 0; i < elemCount; i++ {
		binary.LittleEndian.PutUint32(input[i*4:], uint32(i))
	}
	queue.WriteBuffer(dataBuf, 0, input)

	bindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "multiply_bg",
		Layout: bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: dataBuf.NativeHandle(), Offset: 0, Size: dataSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer device.DestroyBindGroup(bindGroup)

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "multiply_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("multiply"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "multiply"})
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Dispatch(elemCount/64, 1, 1)
	pass.End()

	encoder.CopyBufferToBuffer(dataBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: dataSize},
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

	readback := make([]byte, dataSize)
	if err := queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	for i := 0; i < elemCount; i++ {
		got := binary.LittleEndian.Uint32(readback[i*4:])
		if want := uint32(i) * 12; got != want {
			return fmt.Errorf("element %d: got %d, want %d", i, got, want)
		}
	}

	fmt.Printf("all %d elements verified\n", elemCount)
	return nil
}
