// Command mandelbrot renders the Mandelbrot set with a compute shader,
// one invocation per pixel, and writes the result to mandelbrot.png.
package main

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	_ "github.com/gogpu/wgpu/hal/vulkan"
)

const mandelbrotShaderSource = `
struct Params {
    width:  u32,
    height: u32,
}

@group(0) @binding(0) var<uniform> params: Params;
@group(0) @binding(1) var<storage, read_write> pixels: array<u32>;

@compute @workgroup_size(8, 8)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    if (id.x >= params.width || id.y >= params.height) {
        return;
    }

    let c = vec2<f32>(
        (f32(id.x) / f32(params.width)) * 3.5 - 2.5,
        (f32(id.y) / f32(params.height)) * 2.0 - 1.0,
    );

    var z = vec2<f32>(0.0, 0.0);
    var i: u32 = 0u;
    loop {
        if (i >= 200u || dot(z, z) > 4.0) { break; }
        z = vec2<f32>(z.x * z.x - z.y * z.y, 2.0 * z.x * z.y) + c;
        i = i + 1u;
    }

    let t = f32(i) / 200.0;
    let r = u32(clamp(t * 3.0, 0.0, 1.0) * 255.0);
    let g = u32(clamp(t * t * 2.0, 0.0, 1.0) * 255.0);
    let b = u32(clamp(t * 0.8 + 0.2, 0.0, 1.0) * 255.0) * u32(t < 1.0);
    pixels[id.y * params.width + id.x] = r | (g << 8u) | (b << 16u) | (255u << 24u);
}
`

const (
	imgWidth   = 1024
	imgHeight  = 1024
	paramsSize = 8
	pixelsSize = imgWidth * imgHeight * 4
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
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	device := openDev.Device
	queue := openDev.Queue
	defer device.Destroy()

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "mandelbrot",
		Source: hal.ShaderSource{WGSL: mandelbrotShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile shader: %w", err)
	}
	defer device.DestroyShaderModule(shader)

	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "mandelbrot_bgl",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
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
		Label:            "mandelbrot_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	defer device.DestroyPipelineLayout(pipeLayout)

	pipeline, err := device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "mandelbrot",
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

	paramBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "params",
		Size:  paramsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create params buffer: %w", err)
	}
	defer device.DestroyBuffer(paramBuf)

	pixelBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pixels",
		Size:  pixelsSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create pixel buffer: %w", err)
	}
	defer device.DestroyBuffer(pixelBuf)

	stagingBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "staging",
		Size:  pixelsSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer device.DestroyBuffer(stagingBuf)

	params := make([]byte, paramsSize)
	binary.LittleEndian.PutUint32(params[0:], imgWidth)
	binary.LittleEndian.PutUint32(params[4:], imgHeight)
	queue.WriteBuffer(paramBuf, 0, params)

	bindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "mandelbrot_bg",
		Layout: bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: paramBuf.NativeHandle(), Offset: 0, Size: paramsSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: pixelBuf.NativeHandle(), Offset: 0, Size: pixelsSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer device.DestroyBindGroup(bindGroup)

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "mandelbrot_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("mandelbrot"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "mandelbrot"})
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Dispatch((imgWidth+7)/8, (imgHeight+7)/8, 1)
	pass.End()

	encoder.CopyBufferToBuffer(pixelBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: pixelsSize},
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

	readback := make([]byte, pixelsSize)
	if err := queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}

	// The shader packs RGBA with R in the low byte, which is exactly the
	// byte order image.NRGBA stores.
	img := &image.NRGBA{
		Pix:    readback,
		Stride: imgWidth * 4,
		Rect:   image.Rect(0, 0, imgWidth, imgHeight),
	}

	f, err := os.Create("mandelbrot.png")
	if err != nil {
		return fmt.Errorf("create mandelbrot.png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	fmt.Println("wrote mandelbrot.png")
	return nil
}
